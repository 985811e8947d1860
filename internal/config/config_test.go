package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"smartsort/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("SMARTSORT_LLM_API_KEY", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "state", "smartsort")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if !filepath.IsAbs(cfg.Organize.SourceDir) || !filepath.IsAbs(cfg.Organize.TargetDir) {
		t.Fatalf("expected absolute organize roots, got %q and %q", cfg.Organize.SourceDir, cfg.Organize.TargetDir)
	}
	if filepath.Base(cfg.Organize.TargetDir) != "organized" {
		t.Fatalf("unexpected target dir: %q", cfg.Organize.TargetDir)
	}
	if cfg.Organize.SimilarityThreshold != 0.30 {
		t.Fatalf("unexpected similarity threshold: %v", cfg.Organize.SimilarityThreshold)
	}
	if cfg.Organize.FallbackCategory != "Misc" {
		t.Fatalf("unexpected fallback category: %q", cfg.Organize.FallbackCategory)
	}
	if len(cfg.Organize.ExcludeDirs) != 3 || cfg.Organize.ExcludeDirs[0] != ".git" {
		t.Fatalf("unexpected exclude dirs: %v", cfg.Organize.ExcludeDirs)
	}
	if cfg.LLM.BaseURL != config.Default().LLM.BaseURL {
		t.Fatalf("unexpected llm base url: %q", cfg.LLM.BaseURL)
	}
	if cfg.ClassifyTimeout() != 10*time.Second {
		t.Fatalf("unexpected classify timeout: %v", cfg.ClassifyTimeout())
	}
	if cfg.LLM.RetryAttempts != 1 {
		t.Fatalf("expected a single attempt per call by default, got %d", cfg.LLM.RetryAttempts)
	}
	if !cfg.Journal.Enabled {
		t.Fatal("expected journal enabled by default")
	}
	if cfg.JournalPath() != filepath.Join(wantState, "journal.db") {
		t.Fatalf("unexpected journal path: %q", cfg.JournalPath())
	}
	if cfg.LockPath() != filepath.Join(wantState, "smartsort.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
}

func TestLoadCustomConfigOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SMARTSORT_LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
state_dir = "~/state"

[organize]
source_dir = "~/inbox"
target_dir = "~/sorted"
similarity_threshold = 0.5
exclude_dirs = [" node_modules ", ".git", ".git", ""]
fallback_category = "Unsorted"

[llm]
api_key = " key "
base_url = "https://example.test/v1/chat/completions"
model = "demo"
timeout_seconds = 3
requests_per_second = 2.5

[journal]
enabled = false

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config at %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Paths.StateDir != filepath.Join(tempHome, "state") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if cfg.Organize.SourceDir != filepath.Join(tempHome, "inbox") {
		t.Fatalf("unexpected source dir: %q", cfg.Organize.SourceDir)
	}
	if cfg.Organize.TargetDir != filepath.Join(tempHome, "sorted") {
		t.Fatalf("unexpected target dir: %q", cfg.Organize.TargetDir)
	}
	if got := strings.Join(cfg.Organize.ExcludeDirs, ","); got != "node_modules,.git" {
		t.Fatalf("unexpected exclude dirs: %q", got)
	}
	if cfg.Organize.FallbackCategory != "Unsorted" {
		t.Fatalf("unexpected fallback category: %q", cfg.Organize.FallbackCategory)
	}
	if cfg.LLM.APIKey != "key" || cfg.LLM.Model != "demo" {
		t.Fatalf("unexpected llm settings: %+v", cfg.LLM)
	}
	if cfg.ClassifyTimeout() != 3*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.ClassifyTimeout())
	}
	llm := cfg.GetLLM()
	if llm.RequestsPerSecond != 2.5 || llm.RetryAttempts != 1 {
		t.Fatalf("unexpected llm config: %+v", llm)
	}
	if cfg.Journal.Enabled {
		t.Fatal("expected journal disabled")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadUsesEnvAPIKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SMARTSORT_LLM_API_KEY", "from-env")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "from-env" {
		t.Fatalf("expected api key from env, got %q", cfg.LLM.APIKey)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"threshold", func(c *config.Config) { c.Organize.SimilarityThreshold = 1.5 }, "similarity_threshold"},
		{"fallback", func(c *config.Config) { c.Organize.FallbackCategory = "a/b" }, "fallback_category"},
		{"exclude path", func(c *config.Config) { c.Organize.ExcludeDirs = []string{"a/b"} }, "exclude_dirs"},
		{"rate", func(c *config.Config) { c.LLM.RequestsPerSecond = -1 }, "requests_per_second"},
		{"url", func(c *config.Config) { c.LLM.BaseURL = "localhost:1234" }, "base_url"},
		{"format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}
	if decoded.Organize.SimilarityThreshold != 0.30 {
		t.Fatalf("unexpected sample threshold: %v", decoded.Organize.SimilarityThreshold)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}
