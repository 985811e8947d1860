package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOrganize() error {
	if c.Organize.SimilarityThreshold < 0 || c.Organize.SimilarityThreshold > 1 {
		return errors.New("organize.similarity_threshold must be between 0 and 1")
	}
	if strings.ContainsAny(c.Organize.FallbackCategory, `<>:"/\|?*`) {
		return fmt.Errorf("organize.fallback_category %q contains characters that are not valid in a folder name", c.Organize.FallbackCategory)
	}
	for _, name := range c.Organize.ExcludeDirs {
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("organize.exclude_dirs entry %q must be a directory name, not a path", name)
		}
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if c.LLM.RequestsPerSecond < 0 {
		return errors.New("llm.requests_per_second must be zero (unlimited) or positive")
	}
	if !strings.HasPrefix(c.LLM.BaseURL, "http://") && !strings.HasPrefix(c.LLM.BaseURL, "https://") {
		return fmt.Errorf("llm.base_url %q must be an http(s) URL", c.LLM.BaseURL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
