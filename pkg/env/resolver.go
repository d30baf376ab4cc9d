package env

import (
	"os"
	"path/filepath"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps/golang"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// Default Node/Bun tooling looked up by [Resolver.Lint] and [Resolver.Format].
const (
	DefaultLinter    = "eslint"
	DefaultFormatter = "prettier"
)

// Options configures a [Resolver].
type Options struct {
	Tables    CommandTables // Command tables (default: DefaultCommandTables())
	Linter    string        // Default Node/Bun linter (default: "eslint")
	Formatter string        // Default Node/Bun formatter (default: "prettier")
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Tables.tables == nil {
		opts.Tables = DefaultCommandTables()
	}
	if opts.Linter == "" {
		opts.Linter = DefaultLinter
	}
	if opts.Formatter == "" {
		opts.Formatter = DefaultFormatter
	}
	return opts
}

// Resolver builds [Environment] descriptors for project roots.
type Resolver struct {
	opts Options
}

// NewResolver creates a resolver from explicit configuration.
func NewResolver(opts Options) *Resolver {
	return &Resolver{opts: opts.WithDefaults()}
}

// Resolve probes root and builds its environment. It fails with NO_SUCH_PATH,
// NO_MANIFEST, AMBIGUOUS_ENVIRONMENT or UNPARSABLE_MAIN_FILE.
func (r *Resolver) Resolve(root string) (*Environment, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNoSuchPath, err, "%s", root)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, errors.New(errors.ErrCodeNoSuchPath, "%s does not exist or is not a directory", root)
	}

	d, err := detect(abs)
	if err != nil {
		return nil, err
	}

	codec, err := CodecFor(d.runtime)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(abs, d.manifest)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "read %s", path)
	}
	parsed, err := codec.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "%s", path)
	}

	table, err := r.opts.Tables.For(d.manager)
	if err != nil {
		return nil, err
	}

	workspaces, err := r.workspaces(abs, d.runtime, parsed.Package)
	if err != nil {
		return nil, err
	}

	return &Environment{
		Root:    abs,
		Runtime: d.runtime,
		Manager: d.manager,
		Manifest: Manifest{
			Path:    path,
			Name:    d.manifest,
			Format:  codec.Format(),
			Native:  parsed.Native,
			Package: parsed.Package,
			Codec:   codec,
			parsed:  parsed,
		},
		Lockfile:   d.lockfile,
		Commands:   table,
		Workspaces: workspaces,
	}, nil
}

// workspaces expands the manifest's workspace patterns; Go projects read
// them from go.work instead.
func (r *Resolver) workspaces(root string, rt deps.Runtime, pkg *deps.Package) ([]string, error) {
	patterns := pkg.Workspaces
	if rt == deps.RuntimeGo {
		f, err := os.Open(filepath.Join(root, "go.work"))
		if err != nil {
			return nil, nil
		}
		defer f.Close()
		if patterns, err = golang.ParseWorkFile(f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnparsableMainFile, err, "go.work")
		}
	}
	if len(patterns) == 0 {
		return nil, nil
	}
	return ExpandWorkspaces(root, patterns)
}

// Lint returns the lint command for e using the configured default linter.
func (r *Resolver) Lint(e *Environment) (Command, error) {
	return LintCommand(e, r.opts.Linter)
}

// Format returns the format command for e using the configured default formatter.
func (r *Resolver) Format(e *Environment) (Command, error) {
	return FormatCommand(e, r.opts.Formatter)
}
