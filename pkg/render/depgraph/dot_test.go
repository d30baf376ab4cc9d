package depgraph

import (
	"context"
	"strings"
	"testing"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
)

func testPackages() []*deps.Package {
	root := &deps.Package{
		Name:    "app",
		Version: "1.0.0",
		Dependencies: []deps.Dependency{
			{Name: "lodash", Version: "^4.17.21", Relation: deps.RelationDependency},
			{Name: "vitest", Version: "^1.0.0", Relation: deps.RelationDev},
			{Name: "react", Version: ">=18", Relation: deps.RelationPeer},
		},
	}
	member := &deps.Package{
		Name: "web",
		Dependencies: []deps.Dependency{
			{Name: "lodash", Version: "^4.17.0", Relation: deps.RelationDependency},
		},
	}
	return []*deps.Package{root, member}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testPackages(), Options{Versions: true})

	for _, want := range []string{
		"digraph G {",
		`"pkg:app" [label="app\n1.0.0"`,
		`"pkg:app" -> "dep:lodash" [label="^4.17.21"]`,
		`"pkg:app" -> "dep:vitest" [label="^1.0.0", style=dashed]`,
		`"pkg:app" -> "dep:react" [label=">=18", style=dotted]`,
		`"pkg:web" -> "dep:lodash" [label="^4.17.0"]`,
		`"pkg:app" -> "pkg:web" [style=dotted`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, `"dep:lodash" [label=`); n != 1 {
		t.Errorf("shared dependency declared %d times, want 1", n)
	}
}

func TestToDOTFilterRelations(t *testing.T) {
	dot := ToDOT(testPackages(), Options{Relations: []deps.Relation{deps.RelationDev}})
	if strings.Contains(dot, "dep:lodash") || !strings.Contains(dot, "dep:vitest") {
		t.Errorf("relation filter not applied:\n%s", dot)
	}
}

func TestToDOTSkipsNil(t *testing.T) {
	dot := ToDOT([]*deps.Package{nil, {Name: "solo"}}, Options{})
	if !strings.Contains(dot, `"pkg:solo"`) || strings.Contains(dot, "workspace") {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testPackages(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, `viewBox="0 0 `) || !strings.Contains(s, "lodash") {
		t.Errorf("unexpected SVG output: %.200s", s)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" viewBox="0.00 0.00 120.50 80.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120.50 80.00" width="120" height="80"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s", got)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}
