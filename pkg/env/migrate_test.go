package env

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

func resolveFixture(t *testing.T, files map[string]string) *Environment {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, files)
	e, err := NewResolver(Options{}).Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return e
}

func TestPlanMigrationNodeToCargo(t *testing.T) {
	e := resolveFixture(t, map[string]string{
		"package.json":      `{"name": "web-app", "version": "1.2.0", "dependencies": {"left-pad": "^1.3.0"}, "scripts": {"dev": "vite"}}`,
		"package-lock.json": "{}",
	})

	m, err := PlanMigration(e, deps.ManagerCargo)
	if err != nil {
		t.Fatalf("PlanMigration() error = %v", err)
	}
	if m.Target != filepath.Join(e.Root, "Cargo.toml") {
		t.Errorf("Target = %q", m.Target)
	}

	var doc map[string]any
	if _, err := toml.Decode(string(m.Native), &doc); err != nil {
		t.Fatalf("generated Cargo.toml does not decode: %v\n%s", err, m.Native)
	}
	if _, ok := doc["scripts"]; ok {
		t.Error("json-only fields leaked into a toml manifest")
	}
	pkg, _ := doc["package"].(map[string]any)
	if pkg["name"] != "web-app" || pkg["version"] != "1.2.0" {
		t.Errorf("package table = %v", pkg)
	}

	joined := strings.Join(m.Warnings, "\n")
	if !strings.Contains(joined, "registries") {
		t.Errorf("missing foreign registry warning in %q", joined)
	}
	if !strings.Contains(joined, "package-lock.json") {
		t.Errorf("missing lockfile warning in %q", joined)
	}
}

func TestPlanMigrationKeepsExtraWithinFormat(t *testing.T) {
	e := resolveFixture(t, map[string]string{
		"package.json": `{"name": "web", "version": "1.0.0", "scripts": {"build": "tsc"}, "dependencies": {"react": "^18.0.0"}}`,
		"yarn.lock":    "",
	})

	m, err := PlanMigration(e, deps.ManagerBun)
	if err != nil {
		t.Fatalf("PlanMigration() error = %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(m.Native, &doc); err != nil {
		t.Fatal(err)
	}
	scripts, _ := doc["scripts"].(map[string]any)
	if scripts["build"] != "tsc" {
		t.Errorf("scripts = %v, want build carried over", doc["scripts"])
	}
	if d, _ := doc["dependencies"].(map[string]any); d["react"] != "^18.0.0" {
		t.Errorf("dependencies = %v", doc["dependencies"])
	}
}

func TestPlanMigrationGoNotImplemented(t *testing.T) {
	e := resolveFixture(t, map[string]string{"package.json": packageJSON})

	_, err := PlanMigration(e, deps.ManagerGo)
	if !errors.Is(err, errors.ErrCodeNotImplemented) {
		t.Errorf("PlanMigration() error = %v, want %s", err, errors.ErrCodeNotImplemented)
	}
}

func TestPlanMigrationInvalidName(t *testing.T) {
	e := resolveFixture(t, map[string]string{"Cargo.toml": cargoToml})

	m, err := PlanMigration(e, deps.ManagerDeno)
	if err != nil {
		t.Fatalf("PlanMigration() error = %v", err)
	}
	if len(m.Warnings) == 0 || !strings.Contains(m.Warnings[0], `"cli"`) {
		t.Errorf("Warnings = %v, want a jsr name warning", m.Warnings)
	}
}

func TestMigrationApply(t *testing.T) {
	e := resolveFixture(t, map[string]string{"package.json": packageJSON})

	m, err := PlanMigration(e, deps.ManagerDeno)
	if err != nil {
		t.Fatalf("PlanMigration() error = %v", err)
	}
	if err := m.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	backup, err := os.ReadFile(filepath.Join(e.Root, BackupName))
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	var cpf deps.Package
	if err := json.Unmarshal(backup, &cpf); err != nil {
		t.Fatalf("backup is not CPF: %v", err)
	}
	if cpf.Name != "web" || cpf.Runtime != deps.RuntimeNode {
		t.Errorf("backup = %+v", cpf)
	}

	if _, err := os.Stat(filepath.Join(e.Root, "deno.json")); err != nil {
		t.Errorf("deno.json not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(e.Root, "package.json")); err != nil {
		t.Errorf("source manifest removed: %v", err)
	}
}
