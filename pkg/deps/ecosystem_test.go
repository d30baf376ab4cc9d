package deps

import (
	"testing"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

type nameVisitor struct{}

func (nameVisitor) Node() string   { return "node" }
func (nameVisitor) Bun() string    { return "bun" }
func (nameVisitor) Deno() string   { return "deno" }
func (nameVisitor) Rust() string   { return "rust" }
func (nameVisitor) Golang() string { return "golang" }

func TestVisitRuntime(t *testing.T) {
	for _, rt := range Runtimes {
		got, err := VisitRuntime[string](rt, nameVisitor{})
		if err != nil {
			t.Fatalf("VisitRuntime(%q) error: %v", rt, err)
		}
		if got != string(rt) {
			t.Errorf("VisitRuntime(%q) = %q", rt, got)
		}
	}

	_, err := VisitRuntime[string](Runtime("python"), nameVisitor{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("VisitRuntime(python) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestParseRuntime(t *testing.T) {
	tests := []struct {
		in      string
		want    Runtime
		wantErr bool
	}{
		{"node", RuntimeNode, false},
		{"nodejs", RuntimeNode, false},
		{"go", RuntimeGo, false},
		{"golang", RuntimeGo, false},
		{"deno", RuntimeDeno, false},
		{"python", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRuntime(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseRuntime(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestManagerRuntime(t *testing.T) {
	tests := map[Manager]Runtime{
		ManagerNpm:   RuntimeNode,
		ManagerPnpm:  RuntimeNode,
		ManagerYarn:  RuntimeNode,
		ManagerBun:   RuntimeBun,
		ManagerDeno:  RuntimeDeno,
		ManagerCargo: RuntimeRust,
		ManagerGo:    RuntimeGo,
	}
	for m, want := range tests {
		if got := m.Runtime(); got != want {
			t.Errorf("%s.Runtime() = %s, want %s", m, got, want)
		}
	}

	if _, err := ParseManager("pip"); err == nil {
		t.Error("ParseManager(pip) should fail")
	}
}

func TestRelationValidFor(t *testing.T) {
	tests := []struct {
		rel  Relation
		rt   Runtime
		want bool
	}{
		{RelationPeer, RuntimeNode, true},
		{RelationPeer, RuntimeBun, true},
		{RelationPeer, RuntimeRust, false},
		{RelationIndirect, RuntimeGo, true},
		{RelationIndirect, RuntimeNode, false},
		{RelationBuild, RuntimeRust, true},
		{RelationBuild, RuntimeDeno, false},
		{RelationDev, RuntimeGo, false},
		{RelationDependency, RuntimeGo, true},
	}
	for _, tt := range tests {
		if got := tt.rel.ValidFor(tt.rt); got != tt.want {
			t.Errorf("%s.ValidFor(%s) = %v, want %v", tt.rel, tt.rt, got, tt.want)
		}
	}
}
