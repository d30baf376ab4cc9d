package golang

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// ModFile is the subset of a go.mod file the codec understands.
type ModFile struct {
	Module   string    // Module path from the module directive
	Go       string    // Toolchain version from the go directive (e.g., "1.21")
	Requires []Require // Every require entry, across all blocks, in file order
}

// Require is one entry of a require directive.
type Require struct {
	Path     string
	Version  string
	Indirect bool
}

// Codec translates go.mod files.
type Codec struct{}

var _ deps.Codec = Codec{}

func (Codec) Runtime() deps.Runtime { return deps.RuntimeGo }
func (Codec) ManifestName() string  { return "go.mod" }
func (Codec) Format() string        { return "gomod" }

// Parse scans a go.mod file and derives its canonical package. The module
// path and go version must both be present.
func (c Codec) Parse(data []byte) (*deps.Manifest, error) {
	mod, err := ParseModFile(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "read go.mod")
	}
	if err := deps.RequireFields("go.mod", mod.Module, mod.Go); err != nil {
		return nil, err
	}

	list := make([]deps.Dependency, 0, len(mod.Requires))
	for _, r := range mod.Requires {
		rel := deps.RelationDependency
		if r.Indirect {
			rel = deps.RelationIndirect
		}
		list = append(list, deps.Dependency{
			Name:     r.Path,
			Version:  r.Version,
			Relation: rel,
			Registry: deps.RegistryGoProxy,
		})
	}

	return &deps.Manifest{
		Native:  mod,
		Package: deps.NewPackage(mod.Module, mod.Go, deps.RuntimeGo, list, nil),
	}, nil
}

// Generate is not implemented for go.mod and always fails loudly.
func (Codec) Generate(*deps.Package, map[string]any) (map[string]any, error) {
	return nil, deps.ErrGenerateNotImplemented(deps.RuntimeGo)
}

// Marshal is not implemented for go.mod and always fails loudly.
func (Codec) Marshal(map[string]any) ([]byte, error) {
	return nil, deps.ErrGenerateNotImplemented(deps.RuntimeGo)
}

var goVersionRe = regexp.MustCompile(`^go\s+(\d+\.\d+(?:\.\d+)?)`)

// ParseModFile reads module, go and require directives from r.
func ParseModFile(r io.Reader) (*ModFile, error) {
	mod := &ModFile{}
	inRequire := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if inRequire {
			if line == ")" {
				inRequire = false
				continue
			}
			if req, ok := parseRequireLine(line); ok {
				mod.Requires = append(mod.Requires, req)
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "module ") || strings.HasPrefix(line, "module\t"):
			mod.Module = strings.Trim(stripComment(strings.TrimSpace(line[len("module"):])), `"`)
		case goVersionRe.MatchString(line):
			mod.Go = goVersionRe.FindStringSubmatch(line)[1]
		case line == "require (" || line == "require(":
			inRequire = true
		case strings.HasPrefix(line, "require ") && !strings.HasSuffix(line, "("):
			if req, ok := parseRequireLine(strings.TrimPrefix(line, "require ")); ok {
				mod.Requires = append(mod.Requires, req)
			}
		}
	}

	return mod, scanner.Err()
}

// parseRequireLine parses "path version [// indirect]".
func parseRequireLine(line string) (Require, bool) {
	code, comment, _ := strings.Cut(line, "//")
	fields := strings.Fields(code)
	if len(fields) < 2 {
		return Require{}, false
	}
	return Require{
		Path:     strings.Trim(fields[0], `"`),
		Version:  fields[1],
		Indirect: isIndirect(comment),
	}, true
}

func isIndirect(comment string) bool {
	c := strings.TrimSpace(comment)
	return c == "indirect" || strings.HasPrefix(c, "indirect;")
}

func stripComment(s string) string {
	code, _, _ := strings.Cut(s, "//")
	return strings.TrimSpace(code)
}

// Extra returns nil: go.mod has no fields outside the CPF worth carrying.
func (Codec) Extra(*deps.Manifest) map[string]any { return nil }
