package audit

import (
	"strings"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// Parser turns the output of one package manager's audit command into a
// [Report]. Text heuristics and structured decoders implement the same
// interface, so either can serve a manager without touching callers.
type Parser interface {
	Parse(output string) (*Report, error)
}

// ParserFor returns the text parser of manager m. Only npm, pnpm and yarn
// have an audit command.
func ParserFor(m deps.Manager) (Parser, error) {
	switch m {
	case deps.ManagerNpm:
		return NpmParser{}, nil
	case deps.ManagerPnpm:
		return PnpmParser, nil
	case deps.ManagerYarn:
		return YarnParser, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupportedOperation, "%s has no supported audit report format", m)
}

// Normalize parses the output of an audit run. npm output that is a JSON
// document is read with [NpmJSONParser]. A non-zero exit code with non-empty
// output that yields no records fails with AUDIT_INCONCLUSIVE instead of
// reporting a clean audit.
func Normalize(m deps.Manager, output string, exitCode int) (*Report, error) {
	p, err := ParserFor(m)
	if err != nil {
		return nil, err
	}
	if m == deps.ManagerNpm && strings.HasPrefix(strings.TrimSpace(output), "{") {
		p = NpmJSONParser{}
	}

	report, err := p.Parse(output)
	if err != nil {
		return nil, err
	}
	if exitCode != 0 && report.Clean() && strings.TrimSpace(output) != "" {
		return nil, errors.New(errors.ErrCodeAuditInconclusive,
			"%s audit exited with code %d but no vulnerabilities could be read from its output", m, exitCode)
	}
	return report, nil
}
