package deno

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps/javascript"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// ManifestNames lists the Deno manifest filenames in lookup order.
var ManifestNames = []string{"deno.json", "deno.jsonc"}

// specifierRe matches "npm:name@range" and "jsr:@scope/name@range".
var specifierRe = regexp.MustCompile(`^(npm|jsr):((?:@[\w.-]+/)?[\w.-]+)@(.+)$`)

// ConfigFile is the subset of deno.json the codec reads.
type ConfigFile struct {
	Name       string          `json:"name"`
	Version    string          `json:"version"`
	Imports    json.RawMessage `json:"imports,omitempty"`
	Workspace  []string        `json:"workspace,omitempty"`
	Workspaces []string        `json:"workspaces,omitempty"`
}

var ownedFields = []string{"name", "version", "imports", "workspace", "workspaces"}

// Codec translates deno.json files. Comments and trailing commas (deno.jsonc)
// are accepted on parse; Marshal always writes plain JSON.
type Codec struct{}

var _ deps.Codec = Codec{}

func (Codec) Runtime() deps.Runtime { return deps.RuntimeDeno }
func (Codec) ManifestName() string  { return "deno.json" }
func (Codec) Format() string        { return "jsonc" }

// Parse decodes a deno.json or deno.jsonc and derives its canonical package.
func (Codec) Parse(data []byte) (*deps.Manifest, error) {
	data = jsonc.ToJSON(data)

	var cfg ConfigFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "decode deno.json")
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "decode deno.json")
	}
	if err := deps.RequireFields("deno.json", cfg.Name, cfg.Version); err != nil {
		return nil, err
	}

	keys, imports, err := javascript.StringMap(cfg.Imports)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "deno.json imports")
	}

	var list []deps.Dependency
	for _, k := range keys {
		if d, ok := ParseSpecifier(imports[k]); ok {
			list = append(list, d)
		}
	}

	workspaces := cfg.Workspace
	if len(workspaces) == 0 {
		workspaces = cfg.Workspaces
	}

	return &deps.Manifest{
		Native:  &cfg,
		Fields:  fields,
		Package: deps.NewPackage(cfg.Name, cfg.Version, deps.RuntimeDeno, list, workspaces),
	}, nil
}

// ParseSpecifier parses an import-map target such as "jsr:@std/fs@^1.0.0"
// into a dependency. Anything other than an npm or jsr specifier with a
// version reports false.
func ParseSpecifier(spec string) (deps.Dependency, bool) {
	m := specifierRe.FindStringSubmatch(strings.TrimSpace(spec))
	if m == nil {
		return deps.Dependency{}, false
	}
	reg := deps.RegistryNpm
	if m[1] == "jsr" {
		reg = deps.RegistryJsr
	}
	return deps.Dependency{
		Name:     m[2],
		Version:  m[3],
		Relation: deps.RelationDependency,
		Registry: reg,
	}, true
}

// Specifier formats d as an import-map target. Dependencies from registries
// Deno cannot import from are written as npm specifiers.
func Specifier(d deps.Dependency) string {
	src := "npm"
	if d.Registry == deps.RegistryJsr {
		src = "jsr"
	}
	return fmt.Sprintf("%s:%s@%s", src, d.Name, d.Version)
}

// Generate builds a deno.json structure from pkg. Deno has a single import
// map, so every relation maps to an import entry keyed by package name.
func (Codec) Generate(pkg *deps.Package, extra map[string]any) (map[string]any, error) {
	if pkg == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil package")
	}

	out := map[string]any{
		"name":    pkg.Name,
		"version": pkg.Version,
	}
	if len(pkg.Dependencies) > 0 {
		imports := make(map[string]any, len(pkg.Dependencies))
		for _, d := range pkg.Dependencies {
			imports[d.Name] = Specifier(d)
		}
		out["imports"] = imports
	}
	if len(pkg.Workspaces) > 0 {
		out["workspace"] = pkg.Workspaces
	}

	return deps.Merge(out, extra), nil
}

func (Codec) Marshal(native map[string]any) ([]byte, error) {
	return javascript.MarshalIndent(native)
}

// Extra returns the deno.json fields outside the CPF (tasks, fmt, lint,
// compilerOptions, ...).
func (Codec) Extra(m *deps.Manifest) map[string]any {
	return m.Extra(ownedFields...)
}
