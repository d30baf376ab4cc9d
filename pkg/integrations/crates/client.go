package crates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/cache"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations"
)

// CrateInfo holds metadata for a Rust crate from crates.io.
type CrateInfo struct {
	Name        string // Crate name (e.g., "serde")
	Version     string // Latest stable version, or the highest one if none is stable
	Description string // May be empty
	License     string // May be empty or an SPDX expression ("MIT OR Apache-2.0")
	Downloads   int    // Total download count (0 for new crates)
}

// Client provides access to the crates.io package registry API.
// It is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a crates.io client with the given cache backend.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	headers := map[string]string{"User-Agent": integrations.UserAgent}
	return &Client{
		Client:  integrations.NewClient(backend, "crates", cacheTTL, headers),
		baseURL: "https://crates.io/api/v1",
	}
}

// FetchCrate retrieves metadata for a crate. Crate names are matched
// case-sensitively by crates.io.
//
// Returns [integrations.ErrNotFound] if the crate doesn't exist and
// [integrations.ErrNetwork] for HTTP failures.
func (c *Client) FetchCrate(ctx context.Context, crate string, refresh bool) (*CrateInfo, error) {
	var info CrateInfo
	err := c.Cached(ctx, crate, refresh, &info, func() error {
		return c.fetch(ctx, crate, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// LatestVersion implements deps.VersionFetcher.
func (c *Client) LatestVersion(ctx context.Context, crate string, refresh bool) (string, error) {
	info, err := c.FetchCrate(ctx, crate, refresh)
	if err != nil {
		return "", err
	}
	return info.Version, nil
}

func (c *Client) fetch(ctx context.Context, crate string, info *CrateInfo) error {
	var data crateResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/crates/%s", c.baseURL, crate), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: crate %s", err, crate)
		}
		return err
	}

	version := data.Crate.MaxStableVersion
	if version == "" {
		version = data.Crate.MaxVersion
	}
	*info = CrateInfo{
		Name:        data.Crate.Name,
		Version:     version,
		Description: data.Crate.Description,
		License:     data.Crate.License,
		Downloads:   data.Crate.Downloads,
	}
	return nil
}

type crateResponse struct {
	Crate struct {
		Name             string `json:"name"`
		MaxVersion       string `json:"max_version"`
		MaxStableVersion string `json:"max_stable_version"`
		Description      string `json:"description"`
		License          string `json:"license"`
		Downloads        int    `json:"downloads"`
	} `json:"crate"`
}
