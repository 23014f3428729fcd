package e2e

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const request = `{
  "preferences": {"timeZone": "America/Chicago", "wakeTime": "08:00", "sleepTime": "23:00"},
  "rangeStart": "2025-12-01",
  "rangeEnd": "2025-12-07",
  "events": [{"id": "focus", "start": "2025-12-01T17:00:00", "end": "2025-12-01T22:00:00"}],
  "tasks": [{"id": "report", "durationMinutes": 90, "priority": 1, "dueDate": "2025-12-02"}],
  "habits": [{"id": "practice", "durationMinutes": 120, "frequency": "daily", "preferredTimeOfDay": "evening"}]
}`

// cliPath locates the built binary. DAYLIT_ENGINE_BIN_DIR overrides the
// default of ../../bin relative to this directory.
func cliPath(t *testing.T) string {
	t.Helper()
	binDir := os.Getenv("DAYLIT_ENGINE_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	path, _ := filepath.Abs(filepath.Join(binDir, "daylit-engine"))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s; build it with 'go build -o bin/ ./cmd/daylit-engine'", path)
	}
	return path
}

type env struct {
	t       *testing.T
	cli     string
	db      string
	logDir  string
	request string
}

func setup(t *testing.T) *env {
	tempDir := t.TempDir()
	req := filepath.Join(tempDir, "request.json")
	if err := os.WriteFile(req, []byte(request), 0644); err != nil {
		t.Fatalf("Failed to write request: %v", err)
	}
	return &env{
		t:       t,
		cli:     cliPath(t),
		db:      filepath.Join(tempDir, "data", "engine.db"),
		logDir:  filepath.Join(tempDir, "logs"),
		request: req,
	}
}

func (e *env) run(args ...string) (string, error) {
	full := append([]string{"--db", e.db, "--log-dir", e.logDir}, args...)
	cmd := exec.Command(e.cli, full...)
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (e *env) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("Command %v failed: %v\nOutput: %s", args, err, out)
	}
	return out
}

func TestEndToEndWorkflow(t *testing.T) {
	e := setup(t)

	t.Log("Computing free time...")
	out := e.mustRun("free", "--input", e.request)
	if !strings.Contains(out, "08:00-17:00") {
		t.Errorf("free output missing the Monday morning slot:\n%s", out)
	}

	t.Log("Scheduling tasks...")
	var blocks []struct {
		TaskID             string `json:"taskId"`
		OverflowedDeadline bool   `json:"overflowedDeadline"`
	}
	if err := json.Unmarshal([]byte(e.mustRun("tasks", "--input", e.request, "--json")), &blocks); err != nil {
		t.Fatalf("tasks --json did not print JSON: %v", err)
	}
	if len(blocks) != 1 || blocks[0].TaskID != "report" || blocks[0].OverflowedDeadline {
		t.Errorf("unexpected blocks: %+v", blocks)
	}

	t.Log("Saving habit suggestions...")
	out = e.mustRun("habits", "--input", e.request, "--save")
	if !strings.Contains(out, "Placed outside preferred window") {
		t.Errorf("expected a fallback on the blocked Monday evening:\n%s", out)
	}

	var suggestions []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(e.mustRun("suggestions", "list", "--json")), &suggestions); err != nil {
		t.Fatalf("suggestions list --json did not print JSON: %v", err)
	}
	if len(suggestions) != 7 {
		t.Fatalf("expected 7 suggestions, got %d", len(suggestions))
	}

	t.Log("Accepting and rejecting...")
	e.mustRun("suggestions", "accept", suggestions[0].ID)
	e.mustRun("suggestions", "reject", suggestions[1].ID)
	if _, err := e.run("suggestions", "accept", suggestions[1].ID); err == nil {
		t.Error("expected a decided suggestion to be immutable")
	}

	out = e.mustRun("suggestions", "list", "--status", "accepted")
	if !strings.Contains(out, suggestions[0].ID) {
		t.Errorf("accepted suggestion not listed:\n%s", out)
	}

	out = e.mustRun("backup", "list")
	if !strings.Contains(out, "daylit-engine-") {
		t.Errorf("expected automatic backups before decisions:\n%s", out)
	}

	t.Log("Validating...")
	out = e.mustRun("validate", "--input", e.request)
	if !strings.Contains(out, "No conflicts detected.") {
		t.Errorf("unexpected validate output:\n%s", out)
	}
}

func TestInvalidInputExitCode(t *testing.T) {
	e := setup(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	content := `{"preferences": {"timeZone": "Nowhere/City"}, "rangeStart": "2025-12-01", "rangeEnd": "2025-12-02"}`
	if err := os.WriteFile(bad, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write request: %v", err)
	}

	out, err := e.run("free", "--input", bad)
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected a non-zero exit, got %v\nOutput: %s", err, out)
	}
	if exitErr.ExitCode() != 2 {
		t.Errorf("expected exit code 2 for invalid input, got %d\nOutput: %s", exitErr.ExitCode(), out)
	}
	if !strings.Contains(out, "invalid timezone") {
		t.Errorf("expected the timezone error in output:\n%s", out)
	}
}

func TestOversizedTaskExitCode(t *testing.T) {
	e := setup(t)
	req := filepath.Join(t.TempDir(), "oversized.json")
	content := `{"preferences": {"timeZone": "America/Chicago", "wakeTime": "08:00", "sleepTime": "23:00"},
  "rangeStart": "2025-12-01", "rangeEnd": "2025-12-07",
  "tasks": [{"id": "a", "durationMinutes": 30, "priority": 1}, {"id": "huge", "durationMinutes": 960, "priority": 3}]}`
	if err := os.WriteFile(req, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write request: %v", err)
	}

	out, err := e.run("tasks", "--input", req)
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected a non-zero exit, got %v\nOutput: %s", err, out)
	}
	if exitErr.ExitCode() != 2 {
		t.Errorf("expected exit code 2 for an oversized task, got %d\nOutput: %s", exitErr.ExitCode(), out)
	}
	if !strings.Contains(out, "tasks[1].durationMinutes") {
		t.Errorf("expected the oversized task to be named:\n%s", out)
	}
}
