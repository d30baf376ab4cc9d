package risk

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// Advisory is one published advisory against a package.
type Advisory struct {
	ID         string   `json:"id"`
	Package    string   `json:"package"`
	Summary    string   `json:"summary"`
	Details    string   `json:"details"`
	Aliases    []string `json:"aliases,omitempty"`
	References []string `json:"references,omitempty"`
}

// Source queries advisories for a single package.
type Source interface {
	Advisories(ctx context.Context, name string) ([]Advisory, error)
}

// Lookup is the outcome of querying advisories for a package list.
type Lookup struct {
	Advisories map[string][]Advisory
	Failures   map[string]error
}

// All flattens the successful results in the order of names.
func (l Lookup) All(names []string) []Advisory {
	var out []Advisory
	for _, n := range names {
		out = append(out, l.Advisories[n]...)
	}
	return out
}

// LookupAdvisories queries src for every name concurrently, one goroutine
// per package. A failing query is logged and recorded under Failures as
// ADVISORY_LOOKUP_FAILURE; it never cancels the others. The returned error
// is non-nil only when ctx ends first.
func LookupAdvisories(ctx context.Context, src Source, names []string, logger *log.Logger) (Lookup, error) {
	if logger == nil {
		logger = log.Default()
	}
	res := Lookup{
		Advisories: make(map[string][]Advisory, len(names)),
		Failures:   make(map[string]error),
	}
	if len(names) == 0 {
		return res, nil
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(len(names))
	for _, name := range names {
		g.Go(func() error {
			advs, err := src.Advisories(ctx, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("advisory lookup failed", "package", name, "error", err)
				res.Failures[name] = errors.Wrap(errors.ErrCodeAdvisoryLookup, err, "advisories for %s", name)
				return nil
			}
			logger.Debug("advisories fetched", "package", name, "count", len(advs))
			res.Advisories[name] = advs
			return nil
		})
	}
	_ = g.Wait()
	return res, ctx.Err()
}
