package deps

import (
	"fmt"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/buildinfo"
)

// SpecVersion is the version of the canonical package file format. It changes
// only when the shape of [Package] changes incompatibly.
const SpecVersion = 1

// Package is the canonical package file (CPF): an ecosystem-agnostic view of
// a project manifest. It is built on demand from a native manifest and never
// persisted, except as an explicit backup during migration.
type Package struct {
	Name         string       `json:"name" yaml:"name"`
	Version      string       `json:"version" yaml:"version"`
	Runtime      Runtime      `json:"runtime" yaml:"runtime"`
	Dependencies []Dependency `json:"dependencies" yaml:"dependencies"`
	Workspaces   []string     `json:"workspaces,omitempty" yaml:"workspaces,omitempty"`
	Internal     Internal     `json:"fknode" yaml:"fknode"`
}

// Dependency is one entry in a CPF dependency list.
type Dependency struct {
	Name     string   `json:"name" yaml:"name"`
	Version  string   `json:"ver" yaml:"ver"`
	Relation Relation `json:"rel" yaml:"rel"`
	Registry Registry `json:"src" yaml:"src"`
}

// String formats a dependency as name@version (rel).
func (d Dependency) String() string {
	return fmt.Sprintf("%s@%s (%s)", d.Name, d.Version, d.Relation)
}

// Internal carries the version tags that let consumers detect CPF instances
// produced by an incompatible tool.
type Internal struct {
	ToolVersion    string `json:"toolVersion" yaml:"toolVersion"`
	SpecVersion    int    `json:"cpfSpecVersion" yaml:"cpfSpecVersion"`
	InteropVersion string `json:"interopVersion" yaml:"interopVersion"`
}

// NewPackage builds a CPF with the current version tags. The dependency list
// is deduplicated with [DedupeDependencies].
func NewPackage(name, version string, rt Runtime, deps []Dependency, workspaces []string) *Package {
	return &Package{
		Name:         name,
		Version:      version,
		Runtime:      rt,
		Dependencies: DedupeDependencies(deps),
		Workspaces:   workspaces,
		Internal: Internal{
			ToolVersion:    buildinfo.Version,
			SpecVersion:    SpecVersion,
			InteropVersion: buildinfo.InteropVersion,
		},
	}
}

// Compatible reports whether p was produced by a CPF writer this build can read.
func (p *Package) Compatible() bool {
	return p.Internal.SpecVersion == SpecVersion
}

// ByRelation returns the dependencies of the given relation kind, in order.
func (p *Package) ByRelation(rel Relation) []Dependency {
	var out []Dependency
	for _, d := range p.Dependencies {
		if d.Relation == rel {
			out = append(out, d)
		}
	}
	return out
}
