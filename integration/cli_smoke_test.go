package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"firecycle/integration/harness"
)

func initWorkspace(t *testing.T) (string, string) {
	t.Helper()
	bin := harness.BuildBinary(t)
	ws := filepath.Join(t.TempDir(), "ws")

	stdout, stderr, code := harness.Run(t, bin, t.TempDir(), "init", "--workspace", ws)
	if code != 0 {
		t.Fatalf("init exited %d\nstdout:\n%s\nstderr:\n%s", code, stdout, stderr)
	}
	return bin, ws
}

func writeCandidate(t *testing.T, ws, name, contents string) string {
	t.Helper()
	path := filepath.Join(ws, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write candidate: %v", err)
	}
	return path
}

func TestInitCreatesWorkspaceLayout(t *testing.T) {
	_, ws := initWorkspace(t)

	for _, rel := range []string{"context.yml", "examples/initiative.yml", "audit", "artifacts/dedupe", "artifacts/recommendations"} {
		if _, err := os.Stat(filepath.Join(ws, rel)); err != nil {
			t.Fatalf("missing %s after init: %v", rel, err)
		}
	}
}

func TestInitIsIdempotent(t *testing.T) {
	bin, ws := initWorkspace(t)

	marker := "user_id: customized\n"
	if err := os.WriteFile(filepath.Join(ws, "context.yml"), []byte(marker), 0o644); err != nil {
		t.Fatalf("write context.yml: %v", err)
	}

	_, stderr, code := harness.Run(t, bin, ws, "init", "--workspace", ws)
	if code != 0 {
		t.Fatalf("second init exited %d: %s", code, stderr)
	}
	data, err := os.ReadFile(filepath.Join(ws, "context.yml"))
	if err != nil {
		t.Fatalf("read context.yml: %v", err)
	}
	if string(data) != marker {
		t.Fatalf("re-init overwrote context.yml:\n%s", data)
	}
}

func TestAddListShowLifecycle(t *testing.T) {
	bin, ws := initWorkspace(t)

	stdout, stderr, code := harness.Run(t, bin, ws,
		"initiative", "add", "--workspace", ws, "--from", "examples/initiative.yml")
	if code != 0 {
		t.Fatalf("add exited %d\nstdout:\n%s\nstderr:\n%s", code, stdout, stderr)
	}
	if !strings.Contains(stdout, "Added initiative") {
		t.Fatalf("add output: %s", stdout)
	}
	fields := strings.Fields(stdout)
	id := strings.TrimSuffix(fields[2], ":")

	stdout, stderr, code = harness.Run(t, bin, ws, "initiative", "list", "--workspace", ws)
	if code != 0 {
		t.Fatalf("list exited %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, id) || !strings.Contains(stdout, "1 initiative(s)") {
		t.Fatalf("list output: %s", stdout)
	}

	stdout, stderr, code = harness.Run(t, bin, ws, "initiative", "show", "--workspace", ws, id)
	if code != 0 {
		t.Fatalf("show exited %d: %s", code, stderr)
	}
	var shown map[string]any
	if err := json.Unmarshal([]byte(stdout), &shown); err != nil {
		t.Fatalf("show output is not JSON: %v\n%s", err, stdout)
	}
	if shown["status"] != "concept" {
		t.Fatalf("new initiative status = %v, want concept", shown["status"])
	}

	_, stderr, code = harness.Run(t, bin, ws, "initiative", "set-status", "--workspace", ws, id, "planning")
	if code != 0 {
		t.Fatalf("set-status exited %d: %s", code, stderr)
	}
	_, stderr, code = harness.Run(t, bin, ws, "initiative", "set-status", "--workspace", ws, id, "complete")
	if code == 0 {
		t.Fatalf("skipping from planning to complete was allowed")
	}
	if !strings.Contains(stderr, "cannot transition") {
		t.Fatalf("set-status error: %s", stderr)
	}

	_, stderr, code = harness.Run(t, bin, ws, "initiative", "set-progress", "--workspace", ws, id, "40")
	if code != 0 {
		t.Fatalf("set-progress exited %d: %s", code, stderr)
	}
}

func TestAddBlocksDuplicateWithoutForce(t *testing.T) {
	bin, ws := initWorkspace(t)

	_, stderr, code := harness.Run(t, bin, ws,
		"initiative", "add", "--workspace", ws, "--from", "examples/initiative.yml")
	if code != 0 {
		t.Fatalf("first add exited %d: %s", code, stderr)
	}

	stdout, stderr, code := harness.Run(t, bin, ws,
		"initiative", "add", "--workspace", ws, "--from", "examples/initiative.yml")
	if code == 0 {
		t.Fatalf("second add of the same initiative succeeded\nstdout:\n%s", stdout)
	}
	if !strings.Contains(stderr, "--force") {
		t.Fatalf("second add error: %s", stderr)
	}

	_, stderr, code = harness.Run(t, bin, ws,
		"initiative", "add", "--workspace", ws, "--from", "examples/initiative.yml", "--force")
	if code != 0 {
		t.Fatalf("forced add exited %d: %s", code, stderr)
	}

	stdout, _, _ = harness.Run(t, bin, ws, "initiative", "list", "--workspace", ws)
	if !strings.Contains(stdout, "2 initiative(s)") {
		t.Fatalf("list after forced add: %s", stdout)
	}
}

func TestDedupeWritesReport(t *testing.T) {
	bin, ws := initWorkspace(t)

	_, stderr, code := harness.Run(t, bin, ws,
		"initiative", "add", "--workspace", ws, "--from", "examples/initiative.yml")
	if code != 0 {
		t.Fatalf("add exited %d: %s", code, stderr)
	}

	candidate := writeCandidate(t, ws, "candidate.yml", `title: Improve lead conversion
description: Tighten the signup funnel and follow up on abandoned trials.
impact: High
category: Revenue
timeframe: 1-2 months
difficulty: Intermediate
`)

	stdout, stderr, code := harness.Run(t, bin, ws, "dedupe", "--workspace", ws, "--from", candidate)
	if code != 0 {
		t.Fatalf("dedupe exited %d\nstdout:\n%s\nstderr:\n%s", code, stdout, stderr)
	}
	if !strings.Contains(stdout, "Duplicate of") {
		t.Fatalf("dedupe verdict: %s", stdout)
	}

	reportPath := filepath.Join(ws, "artifacts", "dedupe",
		time.Now().UTC().Format("2006-01-02"), "report.json")
	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read dedupe report: %v", err)
	}
	var report struct {
		SchemaVersion int `json:"schema_version"`
		Result        struct {
			IsDuplicate       bool   `json:"is_duplicate"`
			RecommendedAction string `json:"recommended_action"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("parse dedupe report: %v", err)
	}
	if report.SchemaVersion != 1 || !report.Result.IsDuplicate {
		t.Fatalf("dedupe report: %s", data)
	}
}

func TestRecommendRanksPool(t *testing.T) {
	bin, ws := initWorkspace(t)

	_, stderr, code := harness.Run(t, bin, ws,
		"initiative", "add", "--workspace", ws, "--from", "examples/initiative.yml")
	if code != 0 {
		t.Fatalf("add exited %d: %s", code, stderr)
	}
	second := writeCandidate(t, ws, "second.yml", `title: Automate customer onboarding emails
description: Reduce manual onboarding touch points.
impact: Medium
confidence: 60
category: Efficiency
timeframe: 1-2 weeks
difficulty: Beginner
`)
	_, stderr, code = harness.Run(t, bin, ws,
		"initiative", "add", "--workspace", ws, "--from", second)
	if code != 0 {
		t.Fatalf("second add exited %d: %s", code, stderr)
	}

	stdout, stderr, code := harness.Run(t, bin, ws, "recommend", "--workspace", ws)
	if code != 0 {
		t.Fatalf("recommend exited %d\nstdout:\n%s\nstderr:\n%s", code, stdout, stderr)
	}
	if !strings.Contains(stdout, "1. [") || !strings.Contains(stdout, "2. [") {
		t.Fatalf("recommend output: %s", stdout)
	}

	reportPath := filepath.Join(ws, "artifacts", "recommendations",
		time.Now().UTC().Format("2006-01-02"), "report.json")
	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read recommendation report: %v", err)
	}
	var report struct {
		PoolSize        int `json:"pool_size"`
		Recommendations []struct {
			Priority int `json:"priority"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("parse recommendation report: %v", err)
	}
	if report.PoolSize != 2 || len(report.Recommendations) != 2 {
		t.Fatalf("recommendation report: %s", data)
	}
	if report.Recommendations[0].Priority < report.Recommendations[1].Priority {
		t.Fatalf("recommendations out of order: %s", data)
	}
}

func TestUnknownCommandFails(t *testing.T) {
	bin := harness.BuildBinary(t)
	_, stderr, code := harness.Run(t, bin, t.TempDir(), "frobnicate")
	if code == 0 {
		t.Fatalf("unknown command exited 0")
	}
	if !strings.Contains(stderr, "Unknown command") {
		t.Fatalf("stderr: %s", stderr)
	}
}
