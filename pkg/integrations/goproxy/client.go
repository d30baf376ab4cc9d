package goproxy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/mod/module"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/cache"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations"
)

// ModuleInfo holds the latest version of a module.
type ModuleInfo struct {
	Path    string // Module path (e.g., "github.com/spf13/cobra")
	Version string // Latest version from @latest (e.g., "v1.8.0")
	Time    string // Publication time as reported by the proxy
}

// Client provides access to the Go module proxy API.
// It is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Go module proxy client with the given cache backend.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "goproxy", cacheTTL, nil),
		baseURL: "https://proxy.golang.org",
	}
}

// FetchModule retrieves the latest version of mod.
//
// Returns [integrations.ErrNotFound] if the module doesn't exist (the proxy
// answers 404 or 410) and [integrations.ErrNetwork] for HTTP failures.
func (c *Client) FetchModule(ctx context.Context, mod string, refresh bool) (*ModuleInfo, error) {
	mod = strings.TrimSpace(mod)

	var info ModuleInfo
	err := c.Cached(ctx, mod, refresh, &info, func() error {
		return c.fetch(ctx, mod, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// LatestVersion implements deps.VersionFetcher.
func (c *Client) LatestVersion(ctx context.Context, mod string, refresh bool) (string, error) {
	info, err := c.FetchModule(ctx, mod, refresh)
	if err != nil {
		return "", err
	}
	return info.Version, nil
}

func (c *Client) fetch(ctx context.Context, mod string, info *ModuleInfo) error {
	escaped, err := module.EscapePath(mod)
	if err != nil {
		return fmt.Errorf("invalid module path %q: %w", mod, err)
	}

	var data latestResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/@latest", c.baseURL, escaped), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: go module %s", err, mod)
		}
		return err
	}

	*info = ModuleInfo{Path: mod, Version: data.Version, Time: data.Time}
	return nil
}

type latestResponse struct {
	Version string `json:"Version"`
	Time    string `json:"Time"`
}
