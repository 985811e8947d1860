package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"smartsort/internal/config"
	"smartsort/internal/services/llm"
)

const llmCheckTimeout = 30 * time.Second

// CheckLLM verifies that the LLM endpoint answers a chat completion.
// It uses a 30-second timeout and a single attempt (no retries).
func CheckLLM(ctx context.Context, name string, cfg config.LLMConfig) Result {
	if cfg.BaseURL == "" {
		return Result{Name: name, Detail: "base URL missing"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, llmCheckTimeout)
	defer cancel()

	client := llm.NewClient(llm.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Referer:     cfg.Referer,
		Title:       cfg.Title,
		Temperature: cfg.Temperature,
	}, llm.WithRetryMaxAttempts(1))

	if err := client.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeLLMError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (model %s reachable)", cfg.BaseURL, cfg.Model)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckReadableDirectory verifies that the directory exists and can be listed.
func CheckReadableDirectory(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "read ok")
}

// CheckCreatableDirectory passes when path is a writable directory, or when
// it does not exist yet and its nearest existing ancestor is writable.
func CheckCreatableDirectory(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "(error: not configured)"}
	}
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	} else if !os.IsNotExist(err) {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	parent := filepath.Dir(path)
	for {
		info, err := os.Stat(parent)
		if err == nil {
			if !info.IsDir() {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s is not a directory)", path, parent)}
			}
			break
		}
		if !os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat %s: %v)", path, parent, err)}
		}
		next := filepath.Dir(parent)
		if next == parent {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing parent)", path)}
		}
		parent = next
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	if path == "" {
		return Result{Name: name, Detail: "(error: not configured)"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// summarizeLLMError produces a human-readable summary for LLM health check failures.
func summarizeLLMError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (LLM endpoint unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (LLM endpoint unreachable)"
	}
	return err.Error()
}
