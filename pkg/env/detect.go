package env

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps/deno"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// Lockfile identifies a project's lockfile.
type Lockfile struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// nodeLockfiles maps Node-family lockfiles to the manager that writes them,
// in lookup order.
var nodeLockfiles = []struct {
	name    string
	manager deps.Manager
}{
	{"package-lock.json", deps.ManagerNpm},
	{"pnpm-lock.yaml", deps.ManagerPnpm},
	{"yarn.lock", deps.ManagerYarn},
	{"bun.lockb", deps.ManagerBun},
	{"bun.lock", deps.ManagerBun},
}

// detection is the outcome of probing a root for manifests and lockfiles.
type detection struct {
	runtime  deps.Runtime
	manager  deps.Manager
	manifest string // manifest filename
	lockfile *Lockfile
}

// detect probes root in fixed priority order: go.mod, Cargo.toml, deno.json,
// then package.json with lockfile sniffing.
func detect(root string) (*detection, error) {
	if exists(root, "go.mod") {
		return &detection{
			runtime:  deps.RuntimeGo,
			manager:  deps.ManagerGo,
			manifest: "go.mod",
			lockfile: lockfile(root, "go.sum"),
		}, nil
	}

	if exists(root, "Cargo.toml") {
		return &detection{
			runtime:  deps.RuntimeRust,
			manager:  deps.ManagerCargo,
			manifest: "Cargo.toml",
			lockfile: lockfile(root, "Cargo.lock"),
		}, nil
	}

	for _, name := range deno.ManifestNames {
		if exists(root, name) {
			return &detection{
				runtime:  deps.RuntimeDeno,
				manager:  deps.ManagerDeno,
				manifest: name,
				lockfile: lockfile(root, "deno.lock"),
			}, nil
		}
	}

	if exists(root, "package.json") {
		return detectNode(root)
	}

	return nil, errors.New(errors.ErrCodeNoManifest, "no supported manifest in %s", root)
}

// detectNode disambiguates npm, pnpm, yarn and bun by lockfile. Without a
// lockfile the project defaults to npm; lockfiles of more than one manager
// are reported as ambiguous rather than guessed between.
func detectNode(root string) (*detection, error) {
	var (
		managers []deps.Manager
		found    []string
		first    *Lockfile
	)
	for _, lf := range nodeLockfiles {
		if !exists(root, lf.name) {
			continue
		}
		found = append(found, lf.name)
		if first == nil {
			first = lockfile(root, lf.name)
		}
		if !slices.Contains(managers, lf.manager) {
			managers = append(managers, lf.manager)
		}
	}

	switch len(managers) {
	case 0:
		return &detection{runtime: deps.RuntimeNode, manager: deps.ManagerNpm, manifest: "package.json"}, nil
	case 1:
		d := &detection{runtime: deps.RuntimeNode, manager: managers[0], manifest: "package.json", lockfile: first}
		if managers[0] == deps.ManagerBun {
			d.runtime = deps.RuntimeBun
		}
		return d, nil
	}
	return nil, errors.New(errors.ErrCodeAmbiguousEnvironment,
		"%s has lockfiles of more than one package manager: %s", root, strings.Join(found, ", "))
}

func exists(root, name string) bool {
	info, err := os.Stat(filepath.Join(root, name))
	return err == nil && !info.IsDir()
}

func lockfile(root, name string) *Lockfile {
	if !exists(root, name) {
		return nil
	}
	return &Lockfile{Path: filepath.Join(root, name), Name: name}
}
