package deno

import (
	"reflect"
	"testing"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

func TestCodecParseJSONC(t *testing.T) {
	content := `{
  // project identity
  "name": "@me/tool",
  "version": "0.4.0",
  "tasks": {"dev": "deno run -A main.ts"},
  "imports": {
    "@std/path": "jsr:@std/path@^1.0.0",
    "chalk": "npm:chalk@5",
    "oak": "https://deno.land/x/oak@v12.6.1/mod.ts",
    "@/": "./src/",
    "@std/fs": "jsr:@std/fs@1.0.4",
    "preact": "npm:preact", /* no version */
  },
  "workspace": ["./packages/a", "./packages/b"],
}`

	m, err := Codec{}.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	pkg := m.Package
	if pkg.Name != "@me/tool" || pkg.Version != "0.4.0" {
		t.Errorf("identity = %s@%s", pkg.Name, pkg.Version)
	}

	want := []deps.Dependency{
		{Name: "@std/path", Version: "^1.0.0", Relation: deps.RelationDependency, Registry: deps.RegistryJsr},
		{Name: "chalk", Version: "5", Relation: deps.RelationDependency, Registry: deps.RegistryNpm},
		{Name: "@std/fs", Version: "1.0.4", Relation: deps.RelationDependency, Registry: deps.RegistryJsr},
	}
	if !reflect.DeepEqual(pkg.Dependencies, want) {
		t.Errorf("Dependencies =\n%v\nwant\n%v", pkg.Dependencies, want)
	}
	if !reflect.DeepEqual(pkg.Workspaces, []string{"./packages/a", "./packages/b"}) {
		t.Errorf("Workspaces = %v", pkg.Workspaces)
	}

	if _, ok := (Codec{}).Extra(m)["tasks"]; !ok {
		t.Error("Extra() lost tasks")
	}
}

func TestCodecParseWorkspacesAlias(t *testing.T) {
	m, err := Codec{}.Parse([]byte(`{"name": "x", "version": "1.0.0", "workspaces": ["a"]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(m.Package.Workspaces, []string{"a"}) {
		t.Errorf("Workspaces = %v", m.Package.Workspaces)
	}
}

func TestCodecParseValidation(t *testing.T) {
	for _, content := range []string{
		`{"version": "1.0.0"}`,
		`{"name": "x"}`,
		`{"name": "x", "version": "1.0.0", "imports": ["a"]}`,
		`{`,
	} {
		if _, err := (Codec{}).Parse([]byte(content)); !errors.Is(err, errors.ErrCodeUnparsableMainFile) {
			t.Errorf("Parse(%s) error = %v, want %s", content, err, errors.ErrCodeUnparsableMainFile)
		}
	}
}

func TestParseSpecifier(t *testing.T) {
	tests := []struct {
		spec   string
		want   deps.Dependency
		wantOK bool
	}{
		{"npm:express@^4.18.0", deps.Dependency{Name: "express", Version: "^4.18.0", Relation: deps.RelationDependency, Registry: deps.RegistryNpm}, true},
		{"npm:@types/node@20", deps.Dependency{Name: "@types/node", Version: "20", Relation: deps.RelationDependency, Registry: deps.RegistryNpm}, true},
		{"jsr:@std/assert@1", deps.Dependency{Name: "@std/assert", Version: "1", Relation: deps.RelationDependency, Registry: deps.RegistryJsr}, true},
		{"npm:express", deps.Dependency{}, false},
		{"https://esm.sh/react@18", deps.Dependency{}, false},
		{"./local.ts", deps.Dependency{}, false},
		{"github:denoland/std@main", deps.Dependency{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, ok := ParseSpecifier(tt.spec)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseSpecifier(%q) = %+v, %v; want %+v, %v", tt.spec, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCodecRoundTrip(t *testing.T) {
	content := `{
  "name": "roundtrip",
  "version": "1.0.0",
  "imports": {"@std/path": "jsr:@std/path@^1.0.0", "chalk": "npm:chalk@^5.3.0"}
}`
	c := Codec{}
	m, err := c.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	native, err := c.Generate(m.Package, c.Extra(m))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	data, err := c.Marshal(native)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	again, err := c.Parse(data)
	if err != nil {
		t.Fatalf("Parse(generated) failed: %v", err)
	}

	if again.Package.Name != "roundtrip" || again.Package.Version != "1.0.0" {
		t.Errorf("identity = %s@%s", again.Package.Name, again.Package.Version)
	}
	got := map[string]deps.Dependency{}
	for _, d := range again.Package.Dependencies {
		got[d.Name] = d
	}
	for _, d := range m.Package.Dependencies {
		if got[d.Name] != d {
			t.Errorf("dependency %s = %+v, want %+v", d.Name, got[d.Name], d)
		}
	}
	if len(got) != len(m.Package.Dependencies) {
		t.Errorf("dependency count = %d, want %d", len(got), len(m.Package.Dependencies))
	}
}
