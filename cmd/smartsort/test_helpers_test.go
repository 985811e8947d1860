package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"smartsort/internal/testsupport"
)

// fakeReplies maps file stems to classification replies. Any request that is
// not a classification prompt is answered with groupName.
var fakeReplies = map[string]string{
	"holiday":       "CATEGORY: Photos\nKEYWORDS: beach, holiday\nNEWNAME: beach_holiday",
	"invoice_march": "CATEGORY: Finance\nKEYWORDS: invoice, money\nNEWNAME: march_invoice",
	"tax_2023":      "CATEGORY: Taxes\nKEYWORDS: tax, money\nNEWNAME: tax_return_2023",
}

const groupName = "Paperwork"

type cliTestEnv struct {
	baseDir    string
	sourceDir  string
	targetDir  string
	stateDir   string
	configPath string
	llm        *httptest.Server
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	return setupCLITestEnvWithHandler(t, http.HandlerFunc(fakeLLM))
}

func setupCLITestEnvWithHandler(t *testing.T, handler http.Handler) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SMARTSORT_LLM_API_KEY", "")

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	env := &cliTestEnv{
		baseDir:    base,
		sourceDir:  filepath.Join(base, "inbox"),
		targetDir:  filepath.Join(base, "sorted"),
		stateDir:   filepath.Join(base, "state"),
		configPath: filepath.Join(base, "smartsort.toml"),
		llm:        srv,
	}
	testsupport.WriteTree(t, env.sourceDir, "holiday.jpg", "invoice_march.pdf", "tax_2023.pdf")
	writeTestConfig(t, env)
	return env
}

func fakeLLM(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reply := groupName
	if n := len(req.Messages); n > 0 {
		prompt := req.Messages[n-1].Content
		const marker = "Analyze this filename: "
		if idx := strings.Index(prompt, marker); idx >= 0 {
			stem := prompt[idx+len(marker):]
			if nl := strings.IndexByte(stem, '\n'); nl >= 0 {
				stem = stem[:nl]
			}
			reply = fakeReplies[strings.TrimSpace(stem)]
		}
		if prompt == "ping" {
			reply = "OK"
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"content": reply}}},
	})
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
state_dir = %q

[organize]
source_dir = %q
target_dir = %q

[llm]
base_url = %q
timeout_seconds = 5

[logging]
level = "error"
`, env.stateDir, env.sourceDir, env.targetDir, env.llm.URL)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func requireMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent, stat err=%v", path, err)
	}
}
