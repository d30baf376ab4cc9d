package env

import (
	"slices"
	"strings"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// Command is an argv template, or the explicit unsupported sentinel. The zero
// value is unsupported, so a table can never hold an empty command.
type Command struct {
	argv []string
}

// Unsupported marks an operation the ecosystem cannot perform.
var Unsupported = Command{}

// Cmd builds a supported command. It panics on an empty argv, which would be
// indistinguishable from [Unsupported].
func Cmd(argv ...string) Command {
	if len(argv) == 0 {
		panic("env: empty command")
	}
	return Command{argv: slices.Clone(argv)}
}

// Supported reports whether the command can be run.
func (c Command) Supported() bool { return len(c.argv) > 0 }

// Argv returns a copy of the argv template, or UNSUPPORTED_OPERATION.
func (c Command) Argv() ([]string, error) {
	if !c.Supported() {
		return nil, errors.New(errors.ErrCodeUnsupportedOperation, "operation not supported")
	}
	return slices.Clone(c.argv), nil
}

// With returns the argv template followed by args.
func (c Command) With(args ...string) ([]string, error) {
	argv, err := c.Argv()
	if err != nil {
		return nil, err
	}
	return append(argv, args...), nil
}

func (c Command) String() string {
	if !c.Supported() {
		return "(unsupported)"
	}
	return strings.Join(c.argv, " ")
}

// Operation names one logical maintenance operation.
type Operation string

const (
	OpBase    Operation = "base"
	OpExec    Operation = "exec"
	OpRun     Operation = "run"
	OpUpdate  Operation = "update"
	OpClean   Operation = "clean"
	OpAudit   Operation = "audit"
	OpPublish Operation = "publish"
)

// Operations lists every operation in display order.
var Operations = []Operation{OpBase, OpExec, OpRun, OpUpdate, OpClean, OpAudit, OpPublish}

// CommandTable maps each operation of one package manager to its argv.
type CommandTable struct {
	Base    Command
	Exec    Command
	Run     Command
	Update  Command
	Clean   Command
	Audit   Command
	Publish Command
}

// Get returns the command for op.
func (t CommandTable) Get(op Operation) (Command, error) {
	switch op {
	case OpBase:
		return t.Base, nil
	case OpExec:
		return t.Exec, nil
	case OpRun:
		return t.Run, nil
	case OpUpdate:
		return t.Update, nil
	case OpClean:
		return t.Clean, nil
	case OpAudit:
		return t.Audit, nil
	case OpPublish:
		return t.Publish, nil
	}
	return Unsupported, errors.New(errors.ErrCodeInvalidInput, "unknown operation %q", op)
}

// Argv resolves op to an argv, failing with UNSUPPORTED_OPERATION when the
// manager cannot perform it.
func (t CommandTable) Argv(op Operation) ([]string, error) {
	c, err := t.Get(op)
	if err != nil {
		return nil, err
	}
	argv, err := c.Argv()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupportedOperation, err, "%s", op)
	}
	return argv, nil
}

// CommandTables holds the static command table of every package manager.
// It is built once per process and never modified.
type CommandTables struct {
	tables map[deps.Manager]CommandTable
}

// For returns the table of manager m.
func (ts CommandTables) For(m deps.Manager) (CommandTable, error) {
	t, ok := ts.tables[m]
	if !ok {
		return CommandTable{}, errors.New(errors.ErrCodeInvalidInput, "no command table for %q", m)
	}
	return t, nil
}

// managerTables selects the command tables served by each runtime.
type managerTables struct{}

func (managerTables) Node() map[deps.Manager]CommandTable {
	return map[deps.Manager]CommandTable{
		deps.ManagerNpm: {
			Base:    Cmd("npm"),
			Exec:    Cmd("npx"),
			Run:     Cmd("npm", "run"),
			Update:  Cmd("npm", "update"),
			Clean:   Cmd("npm", "dedupe"),
			Audit:   Cmd("npm", "audit"),
			Publish: Cmd("npm", "publish"),
		},
		deps.ManagerPnpm: {
			Base:    Cmd("pnpm"),
			Exec:    Cmd("pnpm", "dlx"),
			Run:     Cmd("pnpm", "run"),
			Update:  Cmd("pnpm", "update"),
			Clean:   Cmd("pnpm", "dedupe"),
			Audit:   Cmd("pnpm", "audit"),
			Publish: Cmd("pnpm", "publish"),
		},
		deps.ManagerYarn: {
			Base:    Cmd("yarn"),
			Exec:    Cmd("yarn", "dlx"),
			Run:     Cmd("yarn", "run"),
			Update:  Cmd("yarn", "upgrade"),
			Clean:   Cmd("yarn", "autoclean", "--force"),
			Audit:   Cmd("yarn", "audit"),
			Publish: Cmd("yarn", "npm", "publish"),
		},
	}
}

func (managerTables) Bun() map[deps.Manager]CommandTable {
	return map[deps.Manager]CommandTable{
		deps.ManagerBun: {
			Base:    Cmd("bun"),
			Exec:    Cmd("bunx"),
			Run:     Cmd("bun", "run"),
			Update:  Cmd("bun", "update"),
			Clean:   Unsupported,
			Audit:   Unsupported,
			Publish: Cmd("bun", "publish"),
		},
	}
}

func (managerTables) Deno() map[deps.Manager]CommandTable {
	return map[deps.Manager]CommandTable{
		deps.ManagerDeno: {
			Base:    Cmd("deno"),
			Exec:    Cmd("deno", "run"),
			Run:     Cmd("deno", "task"),
			Update:  Cmd("deno", "outdated", "--update"),
			Clean:   Unsupported,
			Audit:   Unsupported,
			Publish: Cmd("deno", "publish"),
		},
	}
}

func (managerTables) Rust() map[deps.Manager]CommandTable {
	return map[deps.Manager]CommandTable{
		deps.ManagerCargo: {
			Base:    Cmd("cargo"),
			Exec:    Unsupported,
			Run:     Cmd("cargo", "run"),
			Update:  Cmd("cargo", "update"),
			Clean:   Cmd("cargo", "clean"),
			Audit:   Unsupported,
			Publish: Cmd("cargo", "publish"),
		},
	}
}

func (managerTables) Golang() map[deps.Manager]CommandTable {
	return map[deps.Manager]CommandTable{
		deps.ManagerGo: {
			Base:    Cmd("go"),
			Exec:    Unsupported,
			Run:     Cmd("go", "run"),
			Update:  Cmd("go", "get", "-u", "all"),
			Clean:   Cmd("go", "clean"),
			Audit:   Unsupported,
			Publish: Unsupported,
		},
	}
}

// DefaultCommandTables builds the command table of every supported manager.
func DefaultCommandTables() CommandTables {
	ts := CommandTables{tables: map[deps.Manager]CommandTable{}}
	for _, rt := range deps.Runtimes {
		tables, err := deps.VisitRuntime[map[deps.Manager]CommandTable](rt, managerTables{})
		if err != nil {
			panic(err) // deps.Runtimes only holds known runtimes
		}
		for m, t := range tables {
			ts.tables[m] = t
		}
	}
	return ts
}
