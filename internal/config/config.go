package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for state that outlives a run.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Organize contains the defaults for an organization pass.
type Organize struct {
	SourceDir           string   `toml:"source_dir"`
	TargetDir           string   `toml:"target_dir"`
	SimilarityThreshold float64  `toml:"similarity_threshold"`
	ExcludeDirs         []string `toml:"exclude_dirs"`
	FallbackCategory    string   `toml:"fallback_category"`
}

// LLM contains connection settings for the classification and naming endpoint.
type LLM struct {
	APIKey            string  `toml:"api_key"`
	BaseURL           string  `toml:"base_url"`
	Model             string  `toml:"model"`
	Referer           string  `toml:"referer"`
	Title             string  `toml:"title"`
	Temperature       float64 `toml:"temperature"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RetryAttempts     int     `toml:"retry_attempts"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// Journal contains configuration for the run history database.
type Journal struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for smartsort.
//
// Configuration sections by subsystem:
//   - Paths: state (journal, lock) and optional log file directory
//   - Organize: default source/target roots, grouping threshold, exclusions
//   - LLM: classification and naming endpoint settings
//   - Journal: run history persistence
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Organize Organize `toml:"organize"`
	LLM      LLM      `toml:"llm"`
	Journal  Journal  `toml:"journal"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/smartsort/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/smartsort/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("smartsort.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory and, when configured, the log directory.
// Source and target roots are owned by the organizer and are not created here.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// JournalPath returns the location of the run history database.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.StateDir, "journal.db")
}

// LockPath returns the location of the organizer run lock.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "smartsort.lock")
}

// ClassifyTimeout returns the hard per-call cap for classification and naming requests.
func (c *Config) ClassifyTimeout() time.Duration {
	if c.LLM.TimeoutSeconds <= 0 {
		return defaultLLMTimeoutSeconds * time.Second
	}
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "smartsort")
	}
	return "~/.local/state/smartsort"
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains the connection settings handed to the LLM client.
type LLMConfig struct {
	APIKey            string
	BaseURL           string
	Model             string
	Referer           string
	Title             string
	Temperature       float64
	TimeoutSeconds    int
	RetryAttempts     int
	RequestsPerSecond float64
}

// GetLLM returns the LLM connection settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		APIKey:            strings.TrimSpace(c.LLM.APIKey),
		BaseURL:           strings.TrimSpace(c.LLM.BaseURL),
		Model:             strings.TrimSpace(c.LLM.Model),
		Referer:           strings.TrimSpace(c.LLM.Referer),
		Title:             strings.TrimSpace(c.LLM.Title),
		Temperature:       c.LLM.Temperature,
		TimeoutSeconds:    c.LLM.TimeoutSeconds,
		RetryAttempts:     c.LLM.RetryAttempts,
		RequestsPerSecond: c.LLM.RequestsPerSecond,
	}
}
