package preflight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"smartsort/internal/testsupport"
)

func okLLMServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": "OK"}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCreatableDirectory(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		pass bool
	}{
		{name: "existing", path: base, pass: true},
		{name: "missing with writable ancestor", path: filepath.Join(base, "a", "b", "c"), pass: true},
		{name: "ancestor is a file", path: filepath.Join(blocker, "out"), pass: false},
		{name: "empty", path: "", pass: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckCreatableDirectory("target", tt.path)
			if result.Passed != tt.pass {
				t.Fatalf("Passed = %v, want %v (%s)", result.Passed, tt.pass, result.Detail)
			}
		})
	}
}

func TestCheckLLM(t *testing.T) {
	srv := okLLMServer(t)
	cfg := testsupport.NewConfig(t, testsupport.WithLLMEndpoint(srv.URL))

	result := CheckLLM(context.Background(), "LLM", cfg.GetLLM())
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckLLM_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	cfg := testsupport.NewConfig(t, testsupport.WithLLMEndpoint(srv.URL))

	result := CheckLLM(context.Background(), "LLM", cfg.GetLLM())
	if result.Passed {
		t.Fatal("expected failure for unauthorized endpoint")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil, Paths{}); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll(t *testing.T) {
	srv := okLLMServer(t)
	cfg := testsupport.NewConfig(t, testsupport.WithLLMEndpoint(srv.URL))
	if err := os.MkdirAll(cfg.Organize.SourceDir, 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg, Paths{Source: cfg.Organize.SourceDir, Target: cfg.Organize.TargetDir})
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d: %+v", len(results), results)
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if Failed(results) {
		t.Fatal("expected no failures")
	}
}

func TestRunAll_MissingSourceFails(t *testing.T) {
	srv := okLLMServer(t)
	cfg := testsupport.NewConfig(t, testsupport.WithLLMEndpoint(srv.URL), testsupport.WithJournal(false))
	cfg.Paths.LogDir = ""

	results := RunAll(context.Background(), cfg, Paths{Source: cfg.Organize.SourceDir, Target: cfg.Organize.TargetDir})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Passed || !Failed(results) {
		t.Fatalf("expected missing source to fail: %+v", results)
	}
}
