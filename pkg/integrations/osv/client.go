package osv

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/cache"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/integrations"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/risk"
)

const (
	DefaultEndpoint = "https://api.osv.dev/v1/query"
	DefaultMemoSize = 512

	// EcosystemNpm is the OSV ecosystem name for npm packages.
	EcosystemNpm = "npm"
)

// Client queries OSV for one ecosystem.
type Client struct {
	*integrations.Client
	endpoint  string
	ecosystem string
	memo      *lru.Cache[string, []Vulnerability]
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the query URL.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithEcosystem selects the OSV ecosystem (default npm).
func WithEcosystem(eco string) Option {
	return func(c *Client) { c.ecosystem = eco }
}

// NewClient creates an OSV client. memoSize bounds the in-process memo;
// values <= 0 use DefaultMemoSize.
func NewClient(backend cache.Cache, ttl time.Duration, memoSize int, opts ...Option) (*Client, error) {
	if memoSize <= 0 {
		memoSize = DefaultMemoSize
	}
	memo, err := lru.New[string, []Vulnerability](memoSize)
	if err != nil {
		return nil, err
	}
	c := &Client{
		Client:    integrations.NewClient(backend, "osv", ttl, nil),
		endpoint:  DefaultEndpoint,
		ecosystem: EcosystemNpm,
		memo:      memo,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Query returns the vulnerabilities affecting name at version. An empty
// version matches every known vulnerability of the package.
func (c *Client) Query(ctx context.Context, name, version string) ([]Vulnerability, error) {
	key := c.ecosystem + ":" + integrations.NormalizePkgName(name) + "@" + version
	if v, ok := c.memo.Get(key); ok {
		return v, nil
	}

	var vulns []Vulnerability
	err := c.Cached(ctx, key, false, &vulns, func() error {
		var resp queryResponse
		q := Query{Package: Package{Name: name, Ecosystem: c.ecosystem}, Version: version}
		if err := c.Post(ctx, c.endpoint, q, &resp); err != nil {
			return err
		}
		vulns = withdrawnFiltered(resp.Vulns)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.memo.Add(key, vulns)
	return vulns, nil
}

// Advisories implements risk.Source.
func (c *Client) Advisories(ctx context.Context, name string) ([]risk.Advisory, error) {
	vulns, err := c.Query(ctx, name, "")
	if err != nil {
		return nil, err
	}
	out := make([]risk.Advisory, 0, len(vulns))
	for _, v := range vulns {
		out = append(out, toAdvisory(name, v))
	}
	return out, nil
}

func withdrawnFiltered(vulns []Vulnerability) []Vulnerability {
	out := vulns[:0:0]
	for _, v := range vulns {
		if v.Withdrawn == "" {
			out = append(out, v)
		}
	}
	return out
}

func toAdvisory(name string, v Vulnerability) risk.Advisory {
	a := risk.Advisory{
		ID:      v.ID,
		Package: name,
		Summary: v.Summary,
		Details: v.Details,
		Aliases: v.Aliases,
	}
	for _, r := range v.References {
		if r.URL != "" {
			a.References = append(a.References, r.URL)
		}
	}
	return a
}
