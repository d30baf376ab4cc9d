// Package cache provides byte-oriented key/value caches used to share
// advisory and registry responses between runs.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entry files under a directory (the CLI default)
//   - [RedisCache]: a shared redis instance, for the API server
//   - [NullCache]: never stores anything (--no-cache, tests)
//
// Keys are built with a [Keyer] so every backend sees the same layout. Each
// backend is also a [Store], which `fknode cache clear` empties.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache stores opaque values under string keys. A ttl of 0 means the
// entry never expires. Get reports a miss as (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// KeyPrefix starts every key fknode writes, so a shared redis can be
// cleared without touching foreign entries.
const KeyPrefix = "fknode:"

// Store is a Cache that can drop every fknode entry it holds and describe
// where they live. All backends in this package implement it.
type Store interface {
	Cache
	Clear(ctx context.Context) error
	String() string
}

// Keyer builds cache keys.
type Keyer struct {
	prefix string
}

// NewKeyer returns a Keyer whose keys all start with prefix.
func NewKeyer(prefix string) Keyer {
	return Keyer{prefix: prefix}
}

// HTTPKey is the key for a raw HTTP response in namespace.
func (k Keyer) HTTPKey(namespace, key string) string {
	return k.prefix + "http:" + namespace + ":" + key
}

// AdvisoryKey is the key for the advisories of one package version in an
// ecosystem. Package names are case-folded.
func (k Keyer) AdvisoryKey(ecosystem, name, version string) string {
	return hashKey(k.prefix+"advisory", strings.ToLower(ecosystem), strings.ToLower(name), version)
}
