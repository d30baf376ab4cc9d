package cache

import (
	"context"
	"time"
)

// NullCache stands in when caching is off. Reason says why (the --no-cache
// flag, cache.disabled, no usable cache directory) and is shown by String.
type NullCache struct {
	Reason string
}

// NewNullCache creates a null cache with no stated reason.
func NewNullCache() *NullCache {
	return &NullCache{}
}

// Disabled creates a null cache recording why caching is off.
func Disabled(reason string) *NullCache {
	return &NullCache{Reason: reason}
}

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (c *NullCache) Delete(context.Context, string) error { return nil }

func (c *NullCache) Clear(context.Context) error { return nil }

func (c *NullCache) Close() error { return nil }

func (c *NullCache) String() string {
	if c.Reason == "" {
		return "disabled"
	}
	return "disabled (" + c.Reason + ")"
}

var _ Store = (*NullCache)(nil)
