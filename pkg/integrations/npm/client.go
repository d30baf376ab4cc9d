package npm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/cache"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations"
)

const registryURL = "https://registry.npmjs.org"

// PackageInfo is the registry's view of a package.
type PackageInfo struct {
	Name        string `json:"name"`
	Latest      string `json:"latest"`
	Description string `json:"description,omitempty"`
	License     string `json:"license,omitempty"`
	Deprecated  string `json:"deprecated,omitempty"`
}

type Client struct {
	*integrations.Client
	baseURL string
}

func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "npm", cacheTTL, nil),
		baseURL: registryURL,
	}
}

func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	key := integrations.NormalizePkgName(pkg)

	var info PackageInfo
	err := c.Cached(ctx, key, refresh, &info, func() error {
		return c.fetch(ctx, key, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// LatestVersion returns the dist-tags latest version of pkg.
func (c *Client) LatestVersion(ctx context.Context, pkg string, refresh bool) (string, error) {
	info, err := c.FetchPackage(ctx, pkg, refresh)
	if err != nil {
		return "", err
	}
	return info.Latest, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	var data registryResponse
	if err := c.Get(ctx, c.baseURL+"/"+integrations.PathEscape(pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return err
	}

	latest := data.DistTags.Latest
	if latest == "" {
		return fmt.Errorf("npm package %s has no latest dist-tag", pkg)
	}
	v := data.Versions[latest]

	*info = PackageInfo{
		Name:        data.Name,
		Latest:      latest,
		Description: v.Description,
		License:     extractField(v.License, "type"),
		Deprecated:  v.Deprecated,
	}
	return nil
}

func extractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return s
		}
	}
	return ""
}

type registryResponse struct {
	Name     string                    `json:"name"`
	DistTags distTags                  `json:"dist-tags"`
	Versions map[string]versionDetails `json:"versions"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	Description string `json:"description"`
	License     any    `json:"license"`
	Deprecated  string `json:"deprecated"`
}
