package deps

import "github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"

// Runtime identifies the ecosystem a project belongs to. The set is closed:
// every switch over runtimes goes through [VisitRuntime], so adding a sixth
// runtime means adding a method to [RuntimeVisitor], which breaks every
// implementation until it handles the new case.
type Runtime string

const (
	RuntimeNode Runtime = "node"
	RuntimeBun  Runtime = "bun"
	RuntimeDeno Runtime = "deno"
	RuntimeRust Runtime = "rust"
	RuntimeGo   Runtime = "golang"
)

// Runtimes lists every supported runtime in detection priority order
// (Go, Rust, Deno, then the Node family).
var Runtimes = []Runtime{RuntimeGo, RuntimeRust, RuntimeDeno, RuntimeBun, RuntimeNode}

// ParseRuntime converts a user-supplied runtime tag into a [Runtime].
func ParseRuntime(s string) (Runtime, error) {
	switch s {
	case "node", "nodejs":
		return RuntimeNode, nil
	case "bun":
		return RuntimeBun, nil
	case "deno":
		return RuntimeDeno, nil
	case "rust":
		return RuntimeRust, nil
	case "golang", "go":
		return RuntimeGo, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown runtime %q", s)
}

// IsJS reports whether the runtime belongs to the JavaScript family.
func (r Runtime) IsJS() bool {
	return r == RuntimeNode || r == RuntimeBun || r == RuntimeDeno
}

// RuntimeVisitor has one method per runtime. Implementations select the
// per-ecosystem behavior (codec, command table, tooling) for a runtime.
type RuntimeVisitor[T any] interface {
	Node() T
	Bun() T
	Deno() T
	Rust() T
	Golang() T
}

// VisitRuntime dispatches rt to the matching visitor method.
func VisitRuntime[T any](rt Runtime, v RuntimeVisitor[T]) (T, error) {
	switch rt {
	case RuntimeNode:
		return v.Node(), nil
	case RuntimeBun:
		return v.Bun(), nil
	case RuntimeDeno:
		return v.Deno(), nil
	case RuntimeRust:
		return v.Rust(), nil
	case RuntimeGo:
		return v.Golang(), nil
	}
	var zero T
	return zero, errors.New(errors.ErrCodeInvalidInput, "unknown runtime %q", string(rt))
}

// Manager identifies the package manager driving a project.
type Manager string

const (
	ManagerNpm   Manager = "npm"
	ManagerPnpm  Manager = "pnpm"
	ManagerYarn  Manager = "yarn"
	ManagerBun   Manager = "bun"
	ManagerDeno  Manager = "deno"
	ManagerCargo Manager = "cargo"
	ManagerGo    Manager = "go"
)

// ParseManager converts a user-supplied manager name into a [Manager].
func ParseManager(s string) (Manager, error) {
	switch m := Manager(s); m {
	case ManagerNpm, ManagerPnpm, ManagerYarn, ManagerBun, ManagerDeno, ManagerCargo, ManagerGo:
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown package manager %q", s)
}

// Runtime returns the runtime a manager operates in.
func (m Manager) Runtime() Runtime {
	switch m {
	case ManagerBun:
		return RuntimeBun
	case ManagerDeno:
		return RuntimeDeno
	case ManagerCargo:
		return RuntimeRust
	case ManagerGo:
		return RuntimeGo
	default:
		return RuntimeNode
	}
}

// Registry is the source a dependency is fetched from.
type Registry string

const (
	RegistryNpm     Registry = "npm"
	RegistryJsr     Registry = "jsr"
	RegistryCrates  Registry = "crates-registry"
	RegistryGoProxy Registry = "go-module-proxy"
)

// Relation is the portable role of a dependency across ecosystems.
type Relation string

const (
	RelationDependency Relation = "dependency"
	RelationDev        Relation = "devDependency"
	RelationPeer       Relation = "peerDependency"  // JavaScript runtimes only
	RelationIndirect   Relation = "indirect"        // Go only
	RelationBuild      Relation = "buildDependency" // Rust only
)

// Relations lists every relation kind in a stable display order.
var Relations = []Relation{RelationDependency, RelationDev, RelationPeer, RelationIndirect, RelationBuild}

// ValidFor reports whether the relation kind exists in the given runtime.
func (r Relation) ValidFor(rt Runtime) bool {
	switch r {
	case RelationDependency:
		return true
	case RelationDev:
		return rt != RuntimeGo
	case RelationPeer:
		return rt.IsJS()
	case RelationIndirect:
		return rt == RuntimeGo
	case RelationBuild:
		return rt == RuntimeRust
	}
	return false
}

func (r Relation) String() string { return string(r) }
