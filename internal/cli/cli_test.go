package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/cache"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/risk"
)

const pnpmAudit = `┌─────────────────────┬────────────────────────────────────────────────────────┐
│ critical            │ Prototype Pollution in lodash                          │
├─────────────────────┼────────────────────────────────────────────────────────┤
│ Package             │ lodash                                                 │
├─────────────────────┼────────────────────────────────────────────────────────┤
│ Vulnerable versions │ <4.17.21                                               │
├─────────────────────┼────────────────────────────────────────────────────────┤
│ Patched versions    │ >=4.17.21                                              │
├─────────────────────┼────────────────────────────────────────────────────────┤
│ Paths               │ . > lodash                                             │
├─────────────────────┼────────────────────────────────────────────────────────┤
│ More info           │ https://github.com/advisories/GHSA-p6mc-m468-83gw      │
└─────────────────────┴────────────────────────────────────────────────────────┘
1 vulnerabilities found
Severity: 1 critical
`

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func nodeProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"package.json":   `{"name": "web", "version": "1.0.0", "dependencies": {"lodash": "^4.17.0"}, "devDependencies": {"eslint": "^9.0.0"}}`,
		"pnpm-lock.yaml": "",
	})
}

// run executes the root command with a private config file and returns
// what the command wrote to its output stream.
func run(t *testing.T, c *CLI, cfg string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  disabled: true\n"+cfg), 0o644))

	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", path}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestEnvJSON(t *testing.T) {
	dir := nodeProject(t)

	out, err := run(t, newTestCLI(), "", "env", dir, "--json")
	require.NoError(t, err)

	var got struct {
		Runtime  deps.Runtime        `json:"runtime"`
		Manager  deps.Manager        `json:"manager"`
		Commands map[string][]string `json:"commands"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, deps.RuntimeNode, got.Runtime)
	assert.Equal(t, deps.ManagerPnpm, got.Manager)
	assert.Equal(t, []string{"pnpm", "audit"}, got.Commands["audit"])
}

func TestEnvMissingManifest(t *testing.T) {
	_, err := run(t, newTestCLI(), "", "env", t.TempDir())
	assert.True(t, errors.Is(err, errors.ErrCodeNoManifest), "got %v", err)
}

func TestExport(t *testing.T) {
	dir := nodeProject(t)

	t.Run("json", func(t *testing.T) {
		out, err := run(t, newTestCLI(), "", "export", dir)
		require.NoError(t, err)
		var pkg deps.Package
		require.NoError(t, json.Unmarshal([]byte(out), &pkg))
		assert.Equal(t, "web", pkg.Name)
		assert.Len(t, pkg.Dependencies, 2)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, newTestCLI(), "", "export", dir, "--format", "yaml")
		require.NoError(t, err)
		var pkg deps.Package
		require.NoError(t, yaml.Unmarshal([]byte(out), &pkg))
		assert.Equal(t, "1.0.0", pkg.Version)
	})

	t.Run("dot filtered by relation", func(t *testing.T) {
		out, err := run(t, newTestCLI(), "", "export", dir, "--format", "dot", "--relation", "dependency")
		require.NoError(t, err)
		assert.Contains(t, out, "digraph")
		assert.Contains(t, out, "lodash")
		assert.NotContains(t, out, "eslint")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, newTestCLI(), "", "export", dir, "--format", "xml")
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
	})

	t.Run("unknown relation", func(t *testing.T) {
		_, err := run(t, newTestCLI(), "", "export", dir, "--format", "dot", "--relation", "optional")
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
	})
}

func TestMigrate(t *testing.T) {
	t.Run("dry run writes nothing", func(t *testing.T) {
		dir := nodeProject(t)
		out, err := run(t, newTestCLI(), "", "migrate", dir, "--to", "cargo", "--dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "[package]")
		assert.NoFileExists(t, filepath.Join(dir, "Cargo.toml"))
	})

	t.Run("writes backup and target", func(t *testing.T) {
		dir := nodeProject(t)
		_, err := run(t, newTestCLI(), "", "migrate", dir, "--to", "bun")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, ".fknode-backup.cpf.json"))
	})

	t.Run("go is not implemented", func(t *testing.T) {
		_, err := run(t, newTestCLI(), "", "migrate", nodeProject(t), "--to", "go")
		assert.True(t, errors.Is(err, errors.ErrCodeNotImplemented), "got %v", err)
	})

	t.Run("requires a target", func(t *testing.T) {
		_, err := run(t, newTestCLI(), "", "migrate", nodeProject(t))
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
	})
}

func TestStats(t *testing.T) {
	_, err := run(t, newTestCLI(), "", "stats", nodeProject(t))
	require.NoError(t, err)

	// jsr has no fetcher, so --latest completes without any registry call.
	dir := writeProject(t, map[string]string{"deno.json": `{"name": "@me/lib", "version": "0.1.0", "imports": {"path": "jsr:@std/path@^1.0.0"}}`})
	_, err = run(t, newTestCLI(), "", "stats", dir, "--latest")
	require.NoError(t, err)
}

func osvServer(t *testing.T, summary string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"vulns": []map[string]any{{"id": "GHSA-test", "summary": summary}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

type scriptedAsker struct {
	asked []string
	yes   bool
}

func (s *scriptedAsker) ask(q *risk.Question) (bool, error) {
	s.asked = append(s.asked, q.ID)
	return s.yes, nil
}

func TestAuditBatchContinuesPastFailures(t *testing.T) {
	srv := osvServer(t, "Session cookie sent to a remote server")
	good := nodeProject(t)
	missing := filepath.Join(t.TempDir(), "gone")
	unsupported := writeProject(t, map[string]string{"Cargo.toml": "[package]\nname = \"cli\"\nversion = \"0.1.0\"\n"})

	var ran []string
	asker := &scriptedAsker{yes: true}
	c := newTestCLI()
	c.Ask = asker.ask
	c.Exec = func(_ context.Context, dir string, argv []string) (string, int, error) {
		ran = append(ran, dir)
		assert.Equal(t, []string{"pnpm", "audit"}, argv)
		return pnpmAudit, 1, nil
	}

	_, err := run(t, c, "advisory:\n  endpoint: "+srv.URL+"\n", "audit", good, missing, unsupported, "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 projects")

	assert.Len(t, ran, 1, "only the resolvable, auditable project runs")
	assert.Equal(t, []string{"network", "cookie", "network.https", "network.websocket", "cookie.flags", "network.websocket.leak"}, asker.asked)
}

func TestAuditTranscript(t *testing.T) {
	srv := osvServer(t, "Prototype pollution")
	report := filepath.Join(t.TempDir(), "audit.txt")
	require.NoError(t, os.WriteFile(report, []byte(pnpmAudit), 0o644))

	c := newTestCLI()
	c.Exec = func(context.Context, string, []string) (string, int, error) {
		t.Fatal("a transcript must not run the audit")
		return "", 0, nil
	}

	t.Run("json", func(t *testing.T) {
		out, err := run(t, c, "advisory:\n  endpoint: "+srv.URL+"\n", "audit", "--report", report, "--manager", "pnpm", "--exit-code", "1", "--json")
		require.NoError(t, err)
		assert.Contains(t, out, `"lodash"`)
		assert.Contains(t, out, `"risk": "critical"`)
	})

	t.Run("no vectors means no questions", func(t *testing.T) {
		asker := &scriptedAsker{}
		c.Ask = asker.ask
		_, err := run(t, c, "advisory:\n  endpoint: "+srv.URL+"\n", "audit", "--report", report, "--manager", "pnpm")
		require.NoError(t, err)
		assert.Empty(t, asker.asked)
	})

	t.Run("inconclusive", func(t *testing.T) {
		junk := filepath.Join(t.TempDir(), "junk.txt")
		require.NoError(t, os.WriteFile(junk, []byte("ERR_PNPM_AUDIT_BAD_RESPONSE"), 0o644))
		_, err := run(t, c, "", "audit", "--report", junk, "--manager", "pnpm", "--exit-code", "1")
		assert.True(t, errors.Is(err, errors.ErrCodeAuditInconclusive), "got %v", err)
	})
}

func TestAuditTranscriptRejectsExtraPaths(t *testing.T) {
	report := filepath.Join(t.TempDir(), "audit.txt")
	require.NoError(t, os.WriteFile(report, []byte(pnpmAudit), 0o644))

	_, err := run(t, newTestCLI(), "", "audit", "--report", report, "--manager", "pnpm", "a", "b")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
}

func TestAuditRetriesRateLimitedLookups(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"vulns": []map[string]any{{"id": "GHSA-test", "summary": "Session cookie leak"}},
		})
	}))
	t.Cleanup(srv.Close)

	report := filepath.Join(t.TempDir(), "audit.txt")
	require.NoError(t, os.WriteFile(report, []byte(pnpmAudit), 0o644))

	asker := &scriptedAsker{}
	c := newTestCLI()
	c.Ask = asker.ask
	cfg := "advisory:\n  endpoint: " + srv.URL + "\n  retries: 2\n  retry_delay: 1ms\n"
	_, err := run(t, c, cfg, "audit", "--report", report, "--manager", "pnpm")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, asker.asked, "cookie")
}

func TestCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	require.NoError(t, err)
	require.NoError(t, fc.Set(ctx, cache.KeyPrefix+"http:npm:lodash", []byte(`"4.17.21"`), 0))

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  dir: "+dir+"\n"), 0o644))

	root := newTestCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--config", path, "cache", "clear"})
	require.NoError(t, root.ExecuteContext(ctx))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCacheClearDisabled(t *testing.T) {
	_, err := run(t, newTestCLI(), "", "cache", "clear")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, newTestCLI(), "", "version")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "interop:"), out)
}
