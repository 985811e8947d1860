package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"smartsort/internal/config"
	"smartsort/internal/journal"
	"smartsort/internal/logging"
	"smartsort/internal/services/llm"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func (c *commandContext) llmClient() (*llm.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	settings := cfg.GetLLM()
	return llm.NewClient(llm.Config{
		APIKey:            settings.APIKey,
		BaseURL:           settings.BaseURL,
		Model:             settings.Model,
		Referer:           settings.Referer,
		Title:             settings.Title,
		Temperature:       settings.Temperature,
		TimeoutSeconds:    settings.TimeoutSeconds,
		RequestsPerSecond: settings.RequestsPerSecond,
	}, llm.WithRetryMaxAttempts(settings.RetryAttempts)), nil
}

// openJournal returns nil without error when the journal is disabled.
func (c *commandContext) openJournal() (*journal.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Journal.Enabled {
		return nil, nil
	}
	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return store, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func expandFlagPath(value string) (string, error) {
	expanded, err := config.ExpandPath(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", value, err)
	}
	return expanded, nil
}
