package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// UserAgent identifies fknode to registries that require one (crates.io).
const UserAgent = "fknode (https://github.com/ZakaHaceCosas/FuckingNode)"

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizePkgName trims and lowercases a package name for use as a cache key.
func NormalizePkgName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// PathEscape escapes a package name for a registry URL path. Scoped npm
// names keep their "@" and encode the slash, as the npm registry expects.
func PathEscape(name string) string {
	if strings.HasPrefix(name, "@") {
		return "@" + url.PathEscape(name[1:])
	}
	return url.PathEscape(name)
}
