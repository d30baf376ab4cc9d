package audit

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
)

// Severity is the severity of one advisory.
type Severity string

const (
	SeverityNone     Severity = ""
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists every severity from least to most severe.
var Severities = []Severity{SeverityLow, SeverityModerate, SeverityHigh, SeverityCritical}

// ParseSeverity reads a severity token case-insensitively. "medium" is
// accepted as moderate.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow, true
	case "moderate", "medium":
		return SeverityModerate, true
	case "high":
		return SeverityHigh, true
	case "critical":
		return SeverityCritical, true
	}
	return SeverityNone, false
}

// Rank orders severities; SeverityNone ranks 0.
func (s Severity) Rank() int {
	return slices.Index(Severities, s) + 1
}

// ChangeType describes what applying the suggested fixes would do.
type ChangeType string

const (
	ChangeBreaking    ChangeType = "breaking"
	ChangeNonBreaking ChangeType = "nonBreaking"
	ChangeBoth        ChangeType = "both"
)

// Vulnerability is one vulnerable package found by an audit.
type Vulnerability struct {
	Name               string   `json:"name"`
	Title              string   `json:"title,omitempty"`
	Severity           Severity `json:"severity"`
	VulnerableVersions string   `json:"vulnerableVersions,omitempty"`
	PatchedVersions    string   `json:"patchedVersions,omitempty"`
	AdvisoryURL        string   `json:"advisoryUrl"`
	IDs                []string `json:"ids,omitempty"`
	References         []string `json:"references,omitempty"`
}

// Report is the normalized result of one audit run.
type Report struct {
	ID         uuid.UUID       `json:"id"`
	Manager    deps.Manager    `json:"manager"`
	Vulnerable []Vulnerability `json:"vulnerablePackages"`
	Direct     []string        `json:"directDependencies"`
	Indirect   []string        `json:"indirectDependencies"`
	ChangeType ChangeType      `json:"changeType"`
	Risk       Severity        `json:"risk"`
}

func newReport(m deps.Manager) *Report {
	return &Report{ID: uuid.New(), Manager: m}
}

// Clean reports whether the audit found nothing.
func (r *Report) Clean() bool {
	return len(r.Vulnerable) == 0
}

// Names returns the distinct vulnerable package names in report order.
func (r *Report) Names() []string {
	var out []string
	for _, v := range r.Vulnerable {
		if !slices.Contains(out, v.Name) {
			out = append(out, v.Name)
		}
	}
	return out
}

// CountBySeverity returns how many records carry each severity.
func (r *Report) CountBySeverity() map[Severity]int {
	out := make(map[Severity]int, len(Severities))
	for _, v := range r.Vulnerable {
		out[v.Severity]++
	}
	return out
}

func (r *Report) addDirect(name string) {
	if name != "" && !slices.Contains(r.Direct, name) {
		r.Direct = append(r.Direct, name)
	}
}

func (r *Report) addIndirect(name string) {
	if name != "" && !slices.Contains(r.Indirect, name) {
		r.Indirect = append(r.Indirect, name)
	}
}

// finish computes the aggregate risk: the highest severity present. Records
// without a parseable severity count as moderate.
func (r *Report) finish() *Report {
	r.Risk = SeverityNone
	for i := range r.Vulnerable {
		v := &r.Vulnerable[i]
		if v.Severity == SeverityNone {
			v.Severity = SeverityModerate
		}
		if v.Severity.Rank() > r.Risk.Rank() {
			r.Risk = v.Severity
		}
	}
	return r
}

// changeType folds the observed fix kinds into a [ChangeType]. A report
// with no forced fix is non-breaking.
func changeType(breaking, nonBreaking bool) ChangeType {
	switch {
	case breaking && nonBreaking:
		return ChangeBoth
	case breaking:
		return ChangeBreaking
	default:
		return ChangeNonBreaking
	}
}

// advisoryIDs extracts GHSA and CVE identifiers from an advisory URL.
func advisoryIDs(url string) []string {
	var ids []string
	for _, part := range strings.FieldsFunc(url, func(r rune) bool { return r == '/' || r == '?' || r == '#' }) {
		upper := strings.ToUpper(part)
		if strings.HasPrefix(upper, "GHSA-") || strings.HasPrefix(upper, "CVE-") {
			ids = append(ids, part)
		}
	}
	return ids
}
