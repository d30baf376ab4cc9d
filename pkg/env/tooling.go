package env

import (
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

type toolKind string

const (
	toolLint   toolKind = "lint"
	toolFormat toolKind = "format"
)

// tooling selects the lint or format command of each runtime.
type tooling struct {
	env  *Environment
	kind toolKind
	tool string // Node/Bun default tool
}

type toolResult struct {
	cmd Command
	err error
}

func (t tooling) js() toolResult {
	d, ok := deps.SpotDependency(t.tool, t.env.Manifest.Package.Dependencies)
	if !ok {
		return toolResult{err: errors.New(errors.ErrCodeUnsupportedOperation,
			"%s: %s is not a dependency of %s", t.kind, t.tool, t.env.Manifest.Package.Name)}
	}
	argv, err := t.env.Commands.Exec.With(d.Name)
	if err != nil {
		return toolResult{err: err}
	}
	if t.kind == toolFormat && d.Name == "prettier" {
		argv = append(argv, "--write", ".")
	}
	return toolResult{cmd: Cmd(argv...)}
}

func (t tooling) Node() toolResult { return t.js() }
func (t tooling) Bun() toolResult  { return t.js() }

func (t tooling) Deno() toolResult {
	if t.kind == toolLint {
		return toolResult{cmd: Cmd("deno", "lint")}
	}
	return toolResult{cmd: Cmd("deno", "fmt")}
}

func (t tooling) Rust() toolResult {
	if t.kind == toolLint {
		return toolResult{err: errors.New(errors.ErrCodeUnsupportedOperation, "linting is not supported for rust")}
	}
	return toolResult{cmd: Cmd("cargo", "fmt")}
}

func (t tooling) Golang() toolResult {
	if t.kind == toolLint {
		return toolResult{err: errors.New(errors.ErrCodeUnsupportedOperation, "linting is not supported for golang")}
	}
	return toolResult{cmd: Cmd("go", "fmt", "./...")}
}

func toolCommand(e *Environment, kind toolKind, tool string) (Command, error) {
	r, err := deps.VisitRuntime[toolResult](e.Runtime, tooling{env: e, kind: kind, tool: tool})
	if err != nil {
		return Unsupported, err
	}
	if r.err != nil {
		return Unsupported, r.err
	}
	return r.cmd, nil
}

// LintCommand returns the lint command of e. Node and Bun projects lint only
// with linter, and only when it is one of the project's dependencies.
func LintCommand(e *Environment, linter string) (Command, error) {
	return toolCommand(e, toolLint, linter)
}

// FormatCommand returns the format command of e. Node and Bun projects format
// only with formatter, and only when it is one of the project's dependencies.
func FormatCommand(e *Environment, formatter string) (Command, error) {
	return toolCommand(e, toolFormat, formatter)
}
