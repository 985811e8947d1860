package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeOrganize(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeOrganize() error {
	var err error
	if strings.TrimSpace(c.Organize.SourceDir) == "" {
		c.Organize.SourceDir = defaultSourceDir
	}
	if c.Organize.SourceDir, err = expandPath(c.Organize.SourceDir); err != nil {
		return fmt.Errorf("organize.source_dir: %w", err)
	}
	if strings.TrimSpace(c.Organize.TargetDir) == "" {
		c.Organize.TargetDir = defaultTargetDir
	}
	if c.Organize.TargetDir, err = expandPath(c.Organize.TargetDir); err != nil {
		return fmt.Errorf("organize.target_dir: %w", err)
	}
	c.Organize.FallbackCategory = strings.TrimSpace(c.Organize.FallbackCategory)
	if c.Organize.FallbackCategory == "" {
		c.Organize.FallbackCategory = defaultFallbackCategory
	}
	seen := make(map[string]struct{}, len(c.Organize.ExcludeDirs))
	excludes := make([]string, 0, len(c.Organize.ExcludeDirs))
	for _, name := range c.Organize.ExcludeDirs {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		excludes = append(excludes, name)
	}
	c.Organize.ExcludeDirs = excludes
	return nil
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("SMARTSORT_LLM_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
	if c.LLM.RetryAttempts <= 0 {
		c.LLM.RetryAttempts = defaultLLMRetryAttempts
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
