package audit

import (
	"strings"
	"unicode/utf8"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// TableParser reads the box-drawn tables printed by `pnpm audit` and
// `yarn audit`. Each advisory is one table; the glyph that opens a table's
// top border is the only difference between the two tools and is what the
// report is split on.
//
// A table yields a record only when it has a valid severity, a package name
// and an https advisory URL; anything else is dropped. Fix kinds are not
// printed in this format, so the change type is always breaking.
type TableParser struct {
	Manager      deps.Manager
	HeaderBorder string // Glyph opening each table (e.g. "┌")
}

var (
	// PnpmParser splits pnpm tables on the light top-left corner.
	PnpmParser = TableParser{Manager: deps.ManagerPnpm, HeaderBorder: "┌"}
	// YarnParser splits yarn tables on the double-rule top-left corner.
	YarnParser = TableParser{Manager: deps.ManagerYarn, HeaderBorder: "╒"}
)

var _ Parser = TableParser{}

// pipes separate the cells of a row.
const pipes = "│║┃"

func (p TableParser) Parse(output string) (*Report, error) {
	if p.HeaderBorder == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "table parser without header border")
	}
	report := newReport(p.Manager)

	blocks := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), p.HeaderBorder)
	for _, block := range blocks[1:] {
		v, hops, ok := parseTable(block)
		if !ok {
			continue
		}
		report.Vulnerable = append(report.Vulnerable, v)
		for _, h := range hops {
			if h <= 1 {
				report.addDirect(v.Name)
			} else {
				report.addIndirect(v.Name)
			}
		}
	}

	report.ChangeType = ChangeBreaking
	return report.finish(), nil
}

// parseTable extracts one record from a table body. hops holds the length
// of every dependency path printed for the package.
func parseTable(block string) (v Vulnerability, hops []int, ok bool) {
	var (
		rows    [][2]string
		lastKey = -1
	)
	for _, line := range strings.Split(block, "\n") {
		cells := splitRow(line)
		switch {
		case len(cells) == 0:
			continue
		case cells[0] == "" && lastKey >= 0:
			// wrapped value continues the previous row
			rows[lastKey][1] = strings.TrimSpace(rows[lastKey][1] + "\n" + cells[1])
		default:
			rows = append(rows, [2]string{cells[0], cells[1]})
			lastKey = len(rows) - 1
		}
	}
	if len(rows) == 0 {
		return v, nil, false
	}

	sev, valid := ParseSeverity(rows[0][0])
	if !valid {
		return v, nil, false
	}
	v.Severity = sev
	v.Title = strings.Join(strings.Fields(rows[0][1]), " ")

	var dependencyOf string
	for _, row := range rows[1:] {
		key, value := strings.ToLower(row[0]), row[1]
		switch key {
		case "package", "module":
			v.Name = strings.TrimSpace(value)
		case "vulnerable versions":
			v.VulnerableVersions = joinLines(value)
		case "patched versions", "patched in":
			v.PatchedVersions = joinLines(value)
		case "paths", "path":
			hops = append(hops, pathHops(value)...)
		case "dependency of":
			dependencyOf = strings.TrimSpace(value)
		case "more info":
			v.AdvisoryURL = strings.Join(strings.Fields(value), "")
		}
	}

	if v.Name == "" || errors.ValidateSecureURL(v.AdvisoryURL) != nil {
		return Vulnerability{}, nil, false
	}
	v.IDs = advisoryIDs(v.AdvisoryURL)
	if len(hops) == 0 && dependencyOf != "" {
		hop := 2
		if dependencyOf == v.Name {
			hop = 1
		}
		hops = []int{hop}
	}
	return v, hops, true
}

// splitRow returns [label, value] for a table row, or nil for borders and
// text outside the table.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	first, _ := utf8.DecodeRuneInString(line)
	if line == "" || !strings.ContainsRune(pipes, first) {
		return nil
	}
	parts := strings.FieldsFunc(line, func(r rune) bool { return strings.ContainsRune(pipes, r) })
	cells := make([]string, 0, 2)
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	// A row opening with an empty label cell splits to a single part.
	switch len(cells) {
	case 0:
		return nil
	case 1:
		return []string{"", cells[0]}
	}
	return []string{cells[0], strings.Join(cells[1:], " ")}
}

// pathHops parses ". > a > b" style paths, one per line, into hop counts.
// A line ending in ">" was wrapped and continues on the next line.
func pathHops(value string) []int {
	var (
		hops []int
		path string
	)
	for _, line := range strings.Split(value, "\n") {
		path = strings.TrimSpace(path + " " + strings.TrimSpace(line))
		if strings.HasSuffix(path, ">") {
			continue
		}
		if path != "" && (strings.Contains(path, ">") || !strings.Contains(path, " ")) {
			if n := countHops(path); n > 0 {
				hops = append(hops, n)
			}
		}
		// other lines are notes such as "Found 12 paths, run `pnpm why x`"
		path = ""
	}
	return hops
}

func countHops(path string) int {
	n := 0
	for _, hop := range strings.Split(path, ">") {
		if hop = strings.TrimSpace(hop); hop != "" && hop != "." {
			n++
		}
	}
	return n
}

func joinLines(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
