package javascript

import (
	"bytes"
	"encoding/json"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// PackageFile is the subset of package.json the codec reads. Dependency
// objects stay raw so their key order survives.
type PackageFile struct {
	Name             string          `json:"name"`
	Version          string          `json:"version"`
	Dependencies     json.RawMessage `json:"dependencies,omitempty"`
	DevDependencies  json.RawMessage `json:"devDependencies,omitempty"`
	PeerDependencies json.RawMessage `json:"peerDependencies,omitempty"`
	Workspaces       json.RawMessage `json:"workspaces,omitempty"`
}

var ownedFields = []string{"name", "version", "dependencies", "devDependencies", "peerDependencies", "workspaces"}

// Codec translates package.json files for one JavaScript runtime.
type Codec struct {
	runtime deps.Runtime
}

var _ deps.Codec = Codec{}

// NewCodec returns the package.json codec for rt ([deps.RuntimeNode] or
// [deps.RuntimeBun]).
func NewCodec(rt deps.Runtime) Codec {
	return Codec{runtime: rt}
}

func (c Codec) Runtime() deps.Runtime {
	if c.runtime == "" {
		return deps.RuntimeNode
	}
	return c.runtime
}

func (Codec) ManifestName() string { return "package.json" }
func (Codec) Format() string       { return "json" }

// Parse decodes a package.json and derives its canonical package.
func (c Codec) Parse(data []byte) (*deps.Manifest, error) {
	var pkg PackageFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "decode package.json")
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "decode package.json")
	}
	if err := deps.RequireFields("package.json", pkg.Name, pkg.Version); err != nil {
		return nil, err
	}

	var list []deps.Dependency
	for _, group := range []struct {
		raw json.RawMessage
		rel deps.Relation
	}{
		{pkg.Dependencies, deps.RelationDependency},
		{pkg.DevDependencies, deps.RelationDev},
		{pkg.PeerDependencies, deps.RelationPeer},
	} {
		keys, versions, err := StringMap(group.raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "package.json %s", group.rel)
		}
		for _, name := range keys {
			list = append(list, deps.Dependency{
				Name:     name,
				Version:  versions[name],
				Relation: group.rel,
				Registry: deps.RegistryNpm,
			})
		}
	}

	workspaces, err := ParseWorkspaces(pkg.Workspaces)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "package.json workspaces")
	}

	return &deps.Manifest{
		Native:  &pkg,
		Fields:  fields,
		Package: deps.NewPackage(pkg.Name, pkg.Version, c.Runtime(), list, workspaces),
	}, nil
}

// ParseWorkspaces accepts both `"workspaces": [...]` and
// `"workspaces": {"packages": [...]}`.
func ParseWorkspaces(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '[' {
		var list []string
		err := json.Unmarshal(raw, &list)
		return list, err
	}
	var obj struct {
		Packages []string `json:"packages"`
	}
	err := json.Unmarshal(raw, &obj)
	return obj.Packages, err
}

// Generate builds a package.json structure from pkg. Relations npm has no
// field for (indirect, build) land in dependencies.
func (Codec) Generate(pkg *deps.Package, extra map[string]any) (map[string]any, error) {
	if pkg == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil package")
	}

	out := map[string]any{
		"name":    pkg.Name,
		"version": pkg.Version,
	}
	for _, d := range pkg.Dependencies {
		field := "dependencies"
		switch d.Relation {
		case deps.RelationDev:
			field = "devDependencies"
		case deps.RelationPeer:
			field = "peerDependencies"
		}
		bucket, ok := out[field].(map[string]any)
		if !ok {
			bucket = map[string]any{}
			out[field] = bucket
		}
		bucket[d.Name] = d.Version
	}
	if len(pkg.Workspaces) > 0 {
		out["workspaces"] = pkg.Workspaces
	}

	return deps.Merge(out, extra), nil
}

// Marshal encodes a generated structure as two-space indented JSON.
func (Codec) Marshal(native map[string]any) ([]byte, error) {
	return MarshalIndent(native)
}

// MarshalIndent encodes v the way package managers write manifests: two
// space indentation, no HTML escaping, trailing newline.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return buf.Bytes(), nil
}

// Extra returns the package.json fields outside the CPF (scripts, license,
// engines, ...).
func (Codec) Extra(m *deps.Manifest) map[string]any {
	return m.Extra(ownedFields...)
}
