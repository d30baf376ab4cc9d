package deps

import (
	"reflect"
	"testing"
)

func TestDedupeDependencies(t *testing.T) {
	in := []Dependency{
		{Name: "express", Version: "^4.18.0", Relation: RelationDependency},
		{Name: "jest", Version: "^29.0.0", Relation: RelationDev},
		{Name: "express", Version: "^5.0.0", Relation: RelationDev},
		{Name: "Express", Version: "^1.0.0", Relation: RelationDependency},
		{Name: "lodash", Version: "^4.17.21", Relation: RelationDependency},
	}

	got := DedupeDependencies(in)

	want := []Dependency{
		{Name: "express", Version: "^4.18.0", Relation: RelationDependency},
		{Name: "jest", Version: "^29.0.0", Relation: RelationDev},
		{Name: "Express", Version: "^1.0.0", Relation: RelationDependency},
		{Name: "lodash", Version: "^4.17.21", Relation: RelationDependency},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DedupeDependencies() = %v, want %v", got, want)
	}
}

func TestDedupeDependenciesIdempotent(t *testing.T) {
	inputs := [][]Dependency{
		nil,
		{},
		{{Name: "a"}, {Name: "b"}, {Name: "a"}, {Name: "c"}, {Name: "b"}},
		{{Name: "serde", Version: "1.0"}, {Name: "serde", Version: "2.0"}},
	}

	for _, in := range inputs {
		once := DedupeDependencies(in)
		twice := DedupeDependencies(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("dedupe(dedupe(%v)) = %v, want %v", in, twice, once)
		}
	}
}

func TestDedupeDependenciesDoesNotMutateInput(t *testing.T) {
	in := []Dependency{{Name: "a"}, {Name: "a"}, {Name: "b"}}
	_ = DedupeDependencies(in)
	if len(in) != 3 || in[1].Name != "a" {
		t.Errorf("input mutated: %v", in)
	}
}

func TestSpotDependency(t *testing.T) {
	list := []Dependency{
		{Name: "eslint", Version: "^9.0.0", Relation: RelationDev},
		{Name: "prettier", Version: "^3.0.0", Relation: RelationDev},
		{Name: "@biomejs/biome", Version: "1.9.0", Relation: RelationDev},
	}

	tests := []struct {
		target string
		want   string
		found  bool
	}{
		{"eslint", "eslint", true},
		{"ESLint ", "eslint", true},
		{"  PRETTIER\t", "prettier", true},
		{"@BiomeJS/Biome", "@biomejs/biome", true},
		{"es lint", "eslint", true},
		{"tslint", "", false},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got, ok := SpotDependency(tt.target, list)
			if ok != tt.found {
				t.Fatalf("SpotDependency(%q) found = %v, want %v", tt.target, ok, tt.found)
			}
			if got.Name != tt.want {
				t.Errorf("SpotDependency(%q) = %q, want %q", tt.target, got.Name, tt.want)
			}
		})
	}
}

func TestCountByRelation(t *testing.T) {
	counts := CountByRelation([]Dependency{
		{Name: "a", Relation: RelationDependency},
		{Name: "b", Relation: RelationDependency},
		{Name: "c", Relation: RelationIndirect},
	})
	if counts[RelationDependency] != 2 || counts[RelationIndirect] != 1 || counts[RelationDev] != 0 {
		t.Errorf("CountByRelation() = %v", counts)
	}
}
