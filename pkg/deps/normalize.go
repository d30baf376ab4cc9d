package deps

import "strings"

// SpotDependency looks up target by exact name, ignoring case and whitespace.
// It is used to confirm that an optional default tool (a linter, a formatter)
// is actually installed before a command defaults to it.
func SpotDependency(target string, deps []Dependency) (Dependency, bool) {
	want := normalizeName(target)
	if want == "" {
		return Dependency{}, false
	}
	for _, d := range deps {
		if normalizeName(d.Name) == want {
			return d, true
		}
	}
	return Dependency{}, false
}

// DedupeDependencies removes entries whose exact name was already seen. The
// first occurrence wins and the order of the survivors is preserved, so the
// operation is idempotent.
func DedupeDependencies(deps []Dependency) []Dependency {
	if deps == nil {
		return nil
	}
	seen := make(map[string]bool, len(deps))
	out := make([]Dependency, 0, len(deps))
	for _, d := range deps {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		out = append(out, d)
	}
	return out
}

// CountByRelation tallies dependencies per relation kind.
func CountByRelation(deps []Dependency) map[Relation]int {
	counts := make(map[Relation]int)
	for _, d := range deps {
		counts[d.Relation]++
	}
	return counts
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
