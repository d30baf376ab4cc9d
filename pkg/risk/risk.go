package risk

import (
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/audit"
)

// severityWeight is the strict-mode bump for each aggregate severity.
var severityWeight = map[audit.Severity]float64{
	audit.SeverityCritical: 1,
	audit.SeverityHigh:     0.75,
	audit.SeverityModerate: 0.5,
	audit.SeverityLow:      0.25,
}

// Weight returns the strict-mode bump for sev; 0 for no severity.
func Weight(sev audit.Severity) float64 {
	return severityWeight[sev]
}

// Assessment is the score of an interrogation.
type Assessment struct {
	Positives int            `json:"positives"`
	Negatives int            `json:"negatives"`
	Risk      audit.Severity `json:"risk"`
	Strict    bool           `json:"strict"`
}

// Classic is the share of risky answers as a percentage. With no answers
// it is 0.
func (a Assessment) Classic() float64 {
	total := a.Positives + a.Negatives
	if total == 0 {
		return 0
	}
	return float64(a.Positives) / float64(total) * 100
}

// StrictPercentage averages the classic score with the severity weight,
// so a critical report never scores below 50.
func (a Assessment) StrictPercentage() float64 {
	return (a.Classic() + Weight(a.Risk)*100) / 2
}

// Percentage is the reported score: strict when requested, classic
// otherwise.
func (a Assessment) Percentage() float64 {
	if a.Strict {
		return a.StrictPercentage()
	}
	return a.Classic()
}
