package deps

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

type fakeFetcher struct {
	versions map[string]string
	mu       sync.Mutex
	calls    []string
}

func (f *fakeFetcher) LatestVersion(_ context.Context, name string, _ bool) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
	if v, ok := f.versions[name]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func TestLatestVersions(t *testing.T) {
	npm := &fakeFetcher{versions: map[string]string{"express": "5.1.0", "lodash": "4.17.21"}}
	list := []Dependency{
		{Name: "express", Version: "4.18.0", Registry: RegistryNpm},
		{Name: "missing", Version: "1.0.0", Registry: RegistryNpm},
		{Name: "@std/path", Version: "1.0.0", Registry: RegistryJsr},
		{Name: "lodash", Version: "4.17.21", Registry: RegistryNpm},
	}

	var logged atomic.Int32
	got := LatestVersions(context.Background(), list, map[Registry]VersionFetcher{RegistryNpm: npm}, Options{
		Logger: func(string, ...any) { logged.Add(1) },
	})

	if len(got) != len(list) {
		t.Fatalf("len = %d, want %d", len(got), len(list))
	}
	for i := range list {
		if got[i].Name != list[i].Name {
			t.Errorf("result %d = %q, want input order %q", i, got[i].Name, list[i].Name)
		}
	}

	if got[0].Latest != "5.1.0" || !got[0].Outdated() {
		t.Errorf("express = %+v, want outdated 5.1.0", got[0])
	}
	if got[1].Err == nil || got[1].Outdated() {
		t.Errorf("missing = %+v, want isolated error", got[1])
	}
	if got[2].Latest != "" || got[2].Err != nil {
		t.Errorf("jsr entry = %+v, want untouched", got[2])
	}
	if got[3].Outdated() {
		t.Errorf("lodash = %+v, want up to date", got[3])
	}
	if n := logged.Load(); n != 1 {
		t.Errorf("logged %d failures, want 1", n)
	}
	if len(npm.calls) != 3 {
		t.Errorf("fetcher called %d times, want 3", len(npm.calls))
	}
}

func TestLatestOutdated(t *testing.T) {
	tests := []struct {
		name   string
		latest Latest
		want   bool
	}{
		{"npm caret in range", Latest{Dependency: Dependency{Version: "^4.17.0", Registry: RegistryNpm}, Latest: "4.17.21"}, false},
		{"npm caret out of range", Latest{Dependency: Dependency{Version: "^4.17.0", Registry: RegistryNpm}, Latest: "5.0.0"}, true},
		{"npm exact behind", Latest{Dependency: Dependency{Version: "1.0.0", Registry: RegistryNpm}, Latest: "1.0.1"}, true},
		{"npm dist tag", Latest{Dependency: Dependency{Version: "latest", Registry: RegistryNpm}, Latest: "2.0.0"}, true},
		{"cargo bare version", Latest{Dependency: Dependency{Version: "1.0", Registry: RegistryCrates}, Latest: "1.0.219"}, false},
		{"cargo major bump", Latest{Dependency: Dependency{Version: "0.3", Registry: RegistryCrates}, Latest: "0.5.1"}, true},
		{"go behind", Latest{Dependency: Dependency{Version: "v1.7.0", Registry: RegistryGoProxy}, Latest: "v1.8.1"}, true},
		{"go current", Latest{Dependency: Dependency{Version: "v1.8.1", Registry: RegistryGoProxy}, Latest: "v1.8.1"}, false},
		{"lookup failed", Latest{Dependency: Dependency{Version: "1.0.0", Registry: RegistryNpm}, Latest: "2.0.0", Err: errors.New("x")}, false},
		{"no lookup", Latest{Dependency: Dependency{Version: "1.0.0", Registry: RegistryJsr}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.latest.Outdated(); got != tt.want {
				t.Errorf("Outdated() = %v, want %v", got, tt.want)
			}
		})
	}
}
