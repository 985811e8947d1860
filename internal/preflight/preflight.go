package preflight

import (
	"context"

	"smartsort/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Paths names the directories a run will touch.
type Paths struct {
	Source string
	Target string
}

// RunAll executes every preflight check for the given config and run paths.
func RunAll(ctx context.Context, cfg *config.Config, paths Paths) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckReadableDirectory("Source directory", paths.Source),
		CheckCreatableDirectory("Target directory", paths.Target),
	}
	if cfg.Journal.Enabled {
		results = append(results, CheckCreatableDirectory("State directory", cfg.Paths.StateDir))
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckCreatableDirectory("Log directory", cfg.Paths.LogDir))
	}
	results = append(results, CheckLLM(ctx, "LLM endpoint", cfg.GetLLM()))
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
