package env

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// BackupName is the CPF backup written next to the manifest before a
// migration overwrites anything.
const BackupName = ".fknode-backup.cpf.json"

// Migration is a planned manifest rewrite from one manager to another.
// Nothing touches disk until [Migration.Apply].
type Migration struct {
	From     deps.Manager
	To       deps.Manager
	Backup   string   // backup path
	Target   string   // manifest path to write
	Native   []byte   // serialized target manifest
	CPF      []byte   // serialized backup
	Warnings []string // non-fatal findings (invalid names, foreign registries)
}

type nameValidator func(string) error

type nameValidators struct{}

func (nameValidators) Node() nameValidator   { return errors.ValidateNpmPackageName }
func (nameValidators) Bun() nameValidator    { return errors.ValidateNpmPackageName }
func (nameValidators) Deno() nameValidator   { return errors.ValidateJsrPackageName }
func (nameValidators) Rust() nameValidator   { return errors.ValidateCratesPackageName }
func (nameValidators) Golang() nameValidator { return errors.ValidateGoModulePath }

type nativeRegistries struct{}

func (nativeRegistries) Node() []deps.Registry   { return []deps.Registry{deps.RegistryNpm} }
func (nativeRegistries) Bun() []deps.Registry    { return []deps.Registry{deps.RegistryNpm} }
func (nativeRegistries) Deno() []deps.Registry   { return []deps.Registry{deps.RegistryNpm, deps.RegistryJsr} }
func (nativeRegistries) Rust() []deps.Registry   { return []deps.Registry{deps.RegistryCrates} }
func (nativeRegistries) Golang() []deps.Registry { return []deps.Registry{deps.RegistryGoProxy} }

// PlanMigration prepares the rewrite of e's manifest for the manager to.
// Extra native fields carry over only when source and target share a
// manifest format. Go targets fail with NOT_IMPLEMENTED.
func PlanMigration(e *Environment, to deps.Manager) (*Migration, error) {
	if e == nil || e.Manifest.Package == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no parsed manifest to migrate")
	}
	if _, err := deps.ParseManager(string(to)); err != nil {
		return nil, err
	}
	rt := to.Runtime()
	codec, err := CodecFor(rt)
	if err != nil {
		return nil, err
	}

	pkg := *e.Manifest.Package
	pkg.Runtime = rt

	var extra map[string]any
	if codec.Format() == e.Manifest.Format {
		extra = e.Manifest.Extra()
	}

	native, err := codec.Generate(&pkg, extra)
	if err != nil {
		return nil, err
	}
	out, err := codec.Marshal(native)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize %s", codec.ManifestName())
	}

	var cpf bytes.Buffer
	enc := json.NewEncoder(&cpf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e.Manifest.Package); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize CPF backup")
	}

	m := &Migration{
		From:   e.Manager,
		To:     to,
		Backup: filepath.Join(e.Root, BackupName),
		Target: filepath.Join(e.Root, codec.ManifestName()),
		Native: out,
		CPF:    cpf.Bytes(),
	}
	m.Warnings = migrationWarnings(&pkg, rt)
	if e.Lockfile != nil && e.Manager != to {
		m.Warnings = append(m.Warnings, fmt.Sprintf("%s belongs to %s; remove it and reinstall with %s", e.Lockfile.Name, e.Manager, to))
	}
	return m, nil
}

func migrationWarnings(pkg *deps.Package, rt deps.Runtime) []string {
	var out []string
	if validate, err := deps.VisitRuntime[nameValidator](rt, nameValidators{}); err == nil {
		if verr := validate(pkg.Name); verr != nil {
			out = append(out, fmt.Sprintf("name %q is not valid for %s: %s", pkg.Name, rt, errors.UserMessage(verr)))
		}
	}
	native, _ := deps.VisitRuntime[[]deps.Registry](rt, nativeRegistries{})
	foreign := 0
	for _, d := range pkg.Dependencies {
		if !slices.Contains(native, d.Registry) {
			foreign++
		}
	}
	if foreign > 0 {
		out = append(out, fmt.Sprintf("%d dependencies come from registries %s does not use", foreign, rt))
	}
	return out
}

// Apply writes the backup first, then the target manifest.
func (m *Migration) Apply() error {
	if err := os.WriteFile(m.Backup, m.CPF, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write backup")
	}
	if err := os.WriteFile(m.Target, m.Native, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", filepath.Base(m.Target))
	}
	return nil
}
