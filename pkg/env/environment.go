package env

import (
	"encoding/json"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
)

// Environment describes one project root. It is built fresh by
// [Resolver.Resolve] and not modified afterwards.
type Environment struct {
	Root       string       `json:"root"`
	Runtime    deps.Runtime `json:"runtime"`
	Manager    deps.Manager `json:"manager"`
	Manifest   Manifest     `json:"manifest"`
	Lockfile   *Lockfile    `json:"lockfile,omitempty"`
	Commands   CommandTable `json:"commands"`
	Workspaces []string     `json:"workspaces,omitempty"`
}

// Manifest is the project's main file together with its parsed forms.
type Manifest struct {
	Path    string         `json:"path"`
	Name    string         `json:"name"`
	Format  string         `json:"format"`
	Native  any            `json:"-"`
	Package *deps.Package  `json:"cpf"`
	Codec   deps.Codec     `json:"-"`
	parsed  *deps.Manifest // for Extra
}

// Extra returns the native fields the CPF does not capture.
func (m Manifest) Extra() map[string]any {
	if m.Codec == nil || m.parsed == nil {
		return nil
	}
	return m.Codec.Extra(m.parsed)
}

// MarshalJSON renders an unsupported command as null and a supported one as
// its argv array.
func (c Command) MarshalJSON() ([]byte, error) {
	if !c.Supported() {
		return []byte("null"), nil
	}
	return json.Marshal(c.argv)
}

// MarshalJSON renders the table keyed by operation name.
func (t CommandTable) MarshalJSON() ([]byte, error) {
	out := make(map[Operation]Command, len(Operations))
	for _, op := range Operations {
		out[op], _ = t.Get(op)
	}
	return json.Marshal(out)
}
