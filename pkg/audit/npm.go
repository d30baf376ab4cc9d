package audit

import (
	"regexp"
	"strings"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

const (
	markerSeverity   = "severity:"
	markerFix        = "fix available"
	markerDependsOn  = "depends on vulnerable versions"
	markerModulePath = "node_modules/"
)

var (
	httpsURLRe    = regexp.MustCompile(`https://\S+`)
	willInstallRe = regexp.MustCompile(`Will install (\S+)@(\S+?),?\s`)
)

// NpmParser reads the plain-text report of `npm audit`.
//
// A package header is a line whose next line carries "Severity:" and whose
// block contains a "fix available" line. The line after
// the severity holds the advisory URL; further advisory lines add
// references. node_modules/ lines classify direct and indirect
// dependencies.
type NpmParser struct{}

var _ Parser = NpmParser{}

func (NpmParser) Parse(output string) (*Report, error) {
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	report := newReport(deps.ManagerNpm)

	var (
		current          *Vulnerability
		breaking, nonBrk bool
	)
	flush := func() {
		if current != nil && current.AdvisoryURL != "" {
			report.Vulnerable = append(report.Vulnerable, *current)
		}
		current = nil
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		lower := strings.ToLower(line)

		switch {
		case isNpmHeader(lines, i):
			flush()
			name, rng, _ := strings.Cut(line, " ")
			current = &Vulnerability{Name: name, VulnerableVersions: strings.TrimSpace(rng)}

			sev := strings.TrimSpace(strings.TrimSpace(lines[i+1])[len(markerSeverity):])
			current.Severity, _ = ParseSeverity(sev)
			i++ // severity line consumed

		case current != nil && strings.Contains(lower, markerFix):
			// end of the advisory list
			if strings.Contains(lower, "--force") {
				breaking = true
			} else if strings.Contains(lower, "npm audit fix") {
				nonBrk = true
			}

		case strings.HasPrefix(lower, "will install"):
			if strings.Contains(lower, "breaking change") {
				breaking = true
			}
			if m := willInstallRe.FindStringSubmatch(line + " "); m != nil && current != nil && m[1] == current.Name {
				current.PatchedVersions = m[2]
			}

		case strings.HasPrefix(line, markerModulePath):
			name := modulePathName(line)
			prev := ""
			if i > 0 {
				prev = strings.ToLower(lines[i-1])
			}
			if strings.Contains(lower, markerDependsOn) || strings.Contains(prev, markerDependsOn) {
				report.addIndirect(name)
			} else {
				report.addDirect(name)
			}

		case current != nil:
			if url := httpsURLRe.FindString(line); url != "" {
				addAdvisory(current, line, url)
			}
		}
	}
	flush()

	report.ChangeType = changeType(breaking, nonBrk)
	return report.finish(), nil
}

// isNpmHeader reports whether lines[i] starts a vulnerable package block: an
// unindented line followed by "Severity:" whose block carries a "fix
// available" marker. The block ends at the first blank line or the next
// header candidate.
func isNpmHeader(lines []string, i int) bool {
	if !startsNpmBlock(lines, i) {
		return false
	}
	for j := i + 2; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "" || startsNpmBlock(lines, j) {
			return false
		}
		if strings.Contains(strings.ToLower(lines[j]), markerFix) {
			return true
		}
	}
	return false
}

func startsNpmBlock(lines []string, i int) bool {
	line := lines[i]
	if strings.TrimSpace(line) == "" || line != strings.TrimLeft(line, " \t") || i+1 >= len(lines) {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(lines[i+1])), markerSeverity)
}

// addAdvisory records one "Title - URL" line. The first becomes the advisory
// URL and title; later ones are references.
func addAdvisory(v *Vulnerability, line, url string) {
	if err := errors.ValidateSecureURL(url); err != nil {
		return
	}
	if v.AdvisoryURL == "" {
		v.AdvisoryURL = url
		v.Title = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(strings.TrimSuffix(line, url)), "-"))
	} else {
		v.References = append(v.References, url)
	}
	for _, id := range advisoryIDs(url) {
		if !containsFold(v.IDs, id) {
			v.IDs = append(v.IDs, id)
		}
	}
}

// modulePathName returns the package named by the last node_modules/ segment
// of a path such as "node_modules/a/node_modules/@scope/b".
func modulePathName(line string) string {
	path := strings.Fields(line)[0]
	idx := strings.LastIndex(path, markerModulePath)
	return strings.TrimSuffix(path[idx+len(markerModulePath):], "/")
}

func containsFold(list []string, s string) bool {
	for _, x := range list {
		if strings.EqualFold(x, s) {
			return true
		}
	}
	return false
}
