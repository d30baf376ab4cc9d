package env

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// ExpandWorkspaces resolves workspace patterns against root. Patterns may be
// plain paths or globs ("packages/*", "apps/**"); a leading "!" excludes
// matches. Only existing directories are returned, as absolute paths in
// pattern order without duplicates.
func ExpandWorkspaces(root string, patterns []string) ([]string, error) {
	var include, exclude []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		neg := strings.HasPrefix(p, "!")
		matches, err := doublestar.Glob(filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(p, "!"))))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "workspace pattern %q", p)
		}
		slices.Sort(matches)
		if neg {
			exclude = append(exclude, matches...)
		} else {
			include = append(include, matches...)
		}
	}

	var out []string
	for _, m := range include {
		abs, err := filepath.Abs(m)
		if err != nil {
			continue
		}
		if slices.Contains(out, abs) || slices.ContainsFunc(exclude, func(x string) bool {
			xa, _ := filepath.Abs(x)
			return xa == abs
		}) {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			out = append(out, abs)
		}
	}
	return out, nil
}
