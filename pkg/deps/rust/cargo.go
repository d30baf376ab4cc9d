package rust

import (
	"bytes"

	"github.com/BurntSushi/toml"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

const (
	tableDependencies      = "dependencies"
	tableDevDependencies   = "dev-dependencies"
	tableBuildDependencies = "build-dependencies"
)

// relationByTable maps Cargo dependency tables to CPF relations.
var relationByTable = map[string]deps.Relation{
	tableDependencies:      deps.RelationDependency,
	tableDevDependencies:   deps.RelationDev,
	tableBuildDependencies: deps.RelationBuild,
}

// ownedFields are the Cargo.toml fields derived from the CPF on generation.
var ownedFields = []string{
	"package.name",
	"package.version",
	tableDependencies,
	tableDevDependencies,
	tableBuildDependencies,
	"workspace.members",
}

// CargoFile is the subset of Cargo.toml the codec reads.
type CargoFile struct {
	Package struct {
		Name    string `toml:"name"`
		Version any    `toml:"version"` // string, or {workspace = true}
	} `toml:"package"`
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
	Workspace         struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

// Codec translates Cargo.toml files.
type Codec struct{}

var _ deps.Codec = Codec{}

func (Codec) Runtime() deps.Runtime { return deps.RuntimeRust }
func (Codec) ManifestName() string  { return "Cargo.toml" }
func (Codec) Format() string        { return "toml" }

// Parse decodes a Cargo.toml and derives its canonical package.
func (Codec) Parse(data []byte) (*deps.Manifest, error) {
	var cargo CargoFile
	md, err := toml.Decode(string(data), &cargo)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "decode Cargo.toml")
	}
	var fields map[string]any
	if err := toml.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "decode Cargo.toml")
	}

	version, _ := cargo.Package.Version.(string)
	if err := deps.RequireFields("Cargo.toml", cargo.Package.Name, version); err != nil {
		return nil, err
	}

	tables := map[string]map[string]any{
		tableDependencies:      cargo.Dependencies,
		tableDevDependencies:   cargo.DevDependencies,
		tableBuildDependencies: cargo.BuildDependencies,
	}

	// md.Keys preserves document order, which the decoded maps lose. Dotted
	// keys (serde.version = "1") only appear with three segments, so the
	// first key naming a dependency places it.
	var list []deps.Dependency
	seen := map[[2]string]bool{}
	for _, key := range md.Keys() {
		if len(key) < 2 {
			continue
		}
		rel, ok := relationByTable[key[0]]
		if !ok || seen[[2]string{key[0], key[1]}] {
			continue
		}
		seen[[2]string{key[0], key[1]}] = true
		list = append(list, deps.Dependency{
			Name:     key[1],
			Version:  versionOf(tables[key[0]][key[1]]),
			Relation: rel,
			Registry: deps.RegistryCrates,
		})
	}

	return &deps.Manifest{
		Native:  &cargo,
		Fields:  fields,
		Package: deps.NewPackage(cargo.Package.Name, version, deps.RuntimeRust, list, cargo.Workspace.Members),
	}, nil
}

// versionOf normalizes a dependency value to its version requirement.
func versionOf(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val["version"].(string); ok && s != "" {
			return s
		}
	}
	return "*"
}

// Generate builds a Cargo.toml structure from pkg. Relations Cargo has no
// table for (peer, indirect) land in [dependencies].
func (Codec) Generate(pkg *deps.Package, extra map[string]any) (map[string]any, error) {
	if pkg == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil package")
	}

	out := map[string]any{
		"package": map[string]any{
			"name":    pkg.Name,
			"version": pkg.Version,
		},
	}

	for _, d := range pkg.Dependencies {
		table := tableDependencies
		switch d.Relation {
		case deps.RelationDev:
			table = tableDevDependencies
		case deps.RelationBuild:
			table = tableBuildDependencies
		}
		bucket, ok := out[table].(map[string]any)
		if !ok {
			bucket = map[string]any{}
			out[table] = bucket
		}
		bucket[d.Name] = d.Version
	}

	if len(pkg.Workspaces) > 0 {
		out["workspace"] = map[string]any{"members": pkg.Workspaces}
	}

	return deps.Merge(out, extra), nil
}

// Marshal encodes a generated structure as TOML.
func (Codec) Marshal(native map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(native); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode Cargo.toml")
	}
	return buf.Bytes(), nil
}

// Extra returns the Cargo.toml fields outside the CPF (edition, features,
// profiles, ...).
func (Codec) Extra(m *deps.Manifest) map[string]any {
	return m.Extra(ownedFields...)
}
