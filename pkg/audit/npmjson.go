package audit

import (
	"encoding/json"
	"slices"
	"sort"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// npmJSONReport is the `npm audit --json` document (auditReportVersion 2).
type npmJSONReport struct {
	AuditReportVersion int                         `json:"auditReportVersion"`
	Vulnerabilities    map[string]npmJSONVulnEntry `json:"vulnerabilities"`
}

type npmJSONVulnEntry struct {
	Name         string            `json:"name"`
	Severity     string            `json:"severity"`
	IsDirect     bool              `json:"isDirect"`
	Via          []json.RawMessage `json:"via"`
	Range        string            `json:"range"`
	Nodes        []string          `json:"nodes"`
	FixAvailable json.RawMessage   `json:"fixAvailable"`
}

// npmJSONAdvisory is a "via" entry that is an advisory rather than the name
// of another vulnerable package.
type npmJSONAdvisory struct {
	Source   int    `json:"source"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Severity string `json:"severity"`
	Range    string `json:"range"`
}

type npmJSONFix struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	IsSemVerMajor bool   `json:"isSemVerMajor"`
}

// NpmJSONParser reads `npm audit --json` output.
type NpmJSONParser struct{}

var _ Parser = NpmJSONParser{}

func (NpmJSONParser) Parse(output string) (*Report, error) {
	var doc npmJSONReport
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode npm audit json")
	}
	if doc.AuditReportVersion != 0 && doc.AuditReportVersion != 2 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported npm audit report version %d", doc.AuditReportVersion)
	}

	report := newReport(deps.ManagerNpm)
	var breaking, nonBrk bool

	names := make([]string, 0, len(doc.Vulnerabilities))
	for name := range doc.Vulnerabilities {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := doc.Vulnerabilities[name]
		if entry.Name == "" {
			entry.Name = name
		}

		if entry.IsDirect {
			report.addDirect(entry.Name)
		} else {
			report.addIndirect(entry.Name)
		}

		if b, ok := fixKind(entry.FixAvailable); ok {
			breaking = breaking || b
			nonBrk = nonBrk || !b
		}

		var v *Vulnerability
		for _, raw := range entry.Via {
			var adv npmJSONAdvisory
			if json.Unmarshal(raw, &adv) != nil {
				continue // a package name, not an advisory
			}
			if errors.ValidateSecureURL(adv.URL) != nil {
				continue
			}
			if v == nil {
				sev, _ := ParseSeverity(entry.Severity)
				v = &Vulnerability{
					Name:               entry.Name,
					Title:              adv.Title,
					Severity:           sev,
					VulnerableVersions: entry.Range,
					AdvisoryURL:        adv.URL,
				}
				if fix := decodeFix(entry.FixAvailable); fix != nil && fix.Name == entry.Name {
					v.PatchedVersions = fix.Version
				}
			} else if !slices.Contains(v.References, adv.URL) && adv.URL != v.AdvisoryURL {
				v.References = append(v.References, adv.URL)
			}
			for _, id := range advisoryIDs(adv.URL) {
				if !containsFold(v.IDs, id) {
					v.IDs = append(v.IDs, id)
				}
			}
		}
		if v != nil {
			report.Vulnerable = append(report.Vulnerable, *v)
		}
	}

	report.ChangeType = changeType(breaking, nonBrk)
	return report.finish(), nil
}

// fixKind reports whether a fixAvailable value is a breaking fix. ok is false
// when no fix is available.
func fixKind(raw json.RawMessage) (breaking, ok bool) {
	var b bool
	if json.Unmarshal(raw, &b) == nil {
		return false, b
	}
	if fix := decodeFix(raw); fix != nil {
		return fix.IsSemVerMajor, true
	}
	return false, false
}

func decodeFix(raw json.RawMessage) *npmJSONFix {
	var fix npmJSONFix
	if len(raw) == 0 || raw[0] != '{' || json.Unmarshal(raw, &fix) != nil {
		return nil
	}
	return &fix
}
