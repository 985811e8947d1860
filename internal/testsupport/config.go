package testsupport

import (
	"path/filepath"
	"testing"

	"smartsort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Source, target, state, and log directories all live under one temp root.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Organize.SourceDir = filepath.Join(base, "source")
	cfgVal.Organize.TargetDir = filepath.Join(base, "organized")
	cfgVal.LLM.BaseURL = "http://127.0.0.1:0/v1/chat/completions"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLLMEndpoint points the test config at a fake completion server.
func WithLLMEndpoint(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.BaseURL = url
	}
}

// WithTargetInsideSource places the target directory beneath the source directory.
func WithTargetInsideSource() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.TargetDir = filepath.Join(b.cfg.Organize.SourceDir, "organized")
	}
}

// WithJournal toggles the run journal.
func WithJournal(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = enabled
	}
}

