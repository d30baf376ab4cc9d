package deps

import (
	"context"

	"deps.dev/util/semver"
	gosemver "golang.org/x/mod/semver"
	"golang.org/x/sync/errgroup"
)

const workers = 20

// VersionFetcher retrieves the latest published version of a package from
// one registry.
type VersionFetcher interface {
	// LatestVersion returns the newest version of name. If refresh is true,
	// cached data is bypassed.
	LatestVersion(ctx context.Context, name string, refresh bool) (string, error)
}

// Options configures registry lookups.
type Options struct {
	Refresh bool                 // Bypass cache for fresh data
	Workers int                  // Maximum concurrent lookups (default: 20)
	Logger  func(string, ...any) // Progress/error callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Workers <= 0 {
		opts.Workers = workers
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Latest pairs a dependency with the newest version its registry reports.
type Latest struct {
	Dependency
	Latest string // Empty when the lookup failed or the registry is unsupported
	Err    error  // Lookup failure, isolated to this dependency
}

// Outdated reports whether the latest registry version falls outside the
// declared requirement. npm and jsr ranges use npm semantics, crates use
// Cargo semantics (a bare "1.0" means "^1.0"), and Go module versions are
// compared directly. A requirement that is not a version range ("latest",
// "workspace:*", git URLs) is outdated only when it differs textually.
func (l Latest) Outdated() bool {
	if l.Err != nil || l.Latest == "" {
		return false
	}

	var sys semver.System
	switch l.Registry {
	case RegistryGoProxy:
		if gosemver.IsValid(l.Version) && gosemver.IsValid(l.Latest) {
			return gosemver.Compare(l.Version, l.Latest) < 0
		}
		return l.Latest != l.Version
	case RegistryCrates:
		sys = semver.Cargo
	default:
		sys = semver.NPM
	}

	c, err := sys.ParseConstraint(l.Version)
	if err != nil {
		return l.Latest != l.Version
	}
	ok, err := c.Set().Match(l.Latest)
	if err != nil {
		return l.Latest != l.Version
	}
	return !ok
}

// LatestVersions looks up every dependency in its registry concurrently.
// Dependencies whose registry has no fetcher are returned without a version;
// a failed lookup is logged and recorded on its entry without affecting the
// others. The result is in the input order.
func LatestVersions(ctx context.Context, deps []Dependency, fetchers map[Registry]VersionFetcher, opts Options) []Latest {
	opts = opts.WithDefaults()
	out := make([]Latest, len(deps))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, d := range deps {
		out[i] = Latest{Dependency: d}
		f, ok := fetchers[d.Registry]
		if !ok {
			continue
		}
		g.Go(func() error {
			v, err := f.LatestVersion(ctx, d.Name, opts.Refresh)
			if err != nil {
				opts.Logger("latest version lookup failed: %s: %v", d.Name, err)
				out[i].Err = err
				return nil
			}
			out[i].Latest = v
			return nil
		})
	}
	_ = g.Wait()

	return out
}
