package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the CLI with args against a config in dir.
func execute(t *testing.T, dir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cfg := filepath.Join(dir, "tsxlower.toml")
	if _, statErr := os.Stat(cfg); statErr != nil {
		if writeErr := os.WriteFile(cfg, []byte("[output]\nextension = \".ts\"\n"), 0o644); writeErr != nil {
			t.Fatal(writeErr)
		}
	}
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--config", cfg, "--color", "off"))
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRootTransformsPattern(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.tsx"), "x = <a />;\n")
	stdout, _, err := execute(t, dir, filepath.Join(dir, "*.tsx"), "--ui", "off")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "a.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "x = React.createElement(\"a\", null);\n" {
		t.Fatalf("output = %q", got)
	}
	if !strings.HasPrefix(stdout, "lowered 1 file(s), 0 from cache") {
		t.Fatalf("summary = %q", stdout)
	}
}

func TestRootQuietAndTimings(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.tsx"), "x = <a />;\n")
	stdout, stderr, err := execute(t, dir, filepath.Join(dir, "a.tsx"), "--quiet", "--timings")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "" {
		t.Fatalf("quiet run printed %q", stdout)
	}
	if !strings.Contains(stderr, "INFO OBS7001: timings (file)") || !strings.Contains(stderr, "timings (batch)") {
		t.Fatalf("timings missing:\n%s", stderr)
	}
}

func TestRootReportsSyntaxError(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "bad.tsx"), "x = <a></b>;\n")
	_, stderr, err := execute(t, dir, filepath.Join(dir, "bad.tsx"))
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(stderr, "SYN2100") {
		t.Fatalf("diagnostic missing:\n%s", stderr)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "bad.ts")); !os.IsNotExist(statErr) {
		t.Fatal("failed input produced an output")
	}
}

func TestRootNoMatchesSucceeds(t *testing.T) {
	dir := t.TempDir()
	stdout, stderr, err := execute(t, dir, filepath.Join(dir, "*.tsx"))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(stdout, "lowered 0 file(s), 0 from cache") {
		t.Fatalf("summary = %q", stdout)
	}
	if !strings.Contains(stderr, "WARNING IO5005") || !strings.Contains(stderr, "matched no files") {
		t.Fatalf("warning missing: %q", stderr)
	}

	stdout, stderr, err = execute(t, dir, filepath.Join(dir, "*.tsx"), "--quiet")
	if err != nil || stdout != "" || stderr != "" {
		t.Fatalf("quiet run: %v, %q, %q", err, stdout, stderr)
	}
}

func TestRootRejectsBadUIMode(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.tsx"), "x = 1;\n")
	_, _, err := execute(t, dir, filepath.Join(dir, "a.tsx"), "--ui", "sometimes")
	if err == nil || !strings.Contains(err.Error(), "--ui") {
		t.Fatalf("err = %v", err)
	}
}

func TestPrintCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "p.tsx")
	write(t, input, "y = <></>;\n")
	stdout, _, err := execute(t, dir, "print", input)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "y = React.createElement(React.Fragment, null);\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "p.ts")); !os.IsNotExist(statErr) {
		t.Fatal("print wrote a file")
	}
}

func TestASTCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "t.tsx")
	write(t, input, "<b />;\n")

	stdout, _, err := execute(t, dir, "ast", input)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout, `"type": "Element"`) {
		t.Fatalf("parsed tree has no element:\n%s", stdout)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	stdout, _, err = execute(t, dir, "ast", "--lowered", input)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.Contains(stdout, `"type": "Element"`) {
		t.Fatalf("lowered tree still has markup:\n%s", stdout)
	}
	if !strings.Contains(stdout, `"name": "createElement"`) {
		t.Fatalf("lowered tree has no factory call:\n%s", stdout)
	}
}

func TestASTCommandMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, stderr, err := execute(t, dir, "ast", filepath.Join(dir, "missing.tsx"))
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stderr, "IO5001") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestVersionJSON(t *testing.T) {
	dir := t.TempDir()
	stdout, _, err := execute(t, dir, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "tsxlower" || payload.GitCommit == "" || payload.BuildDate == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeOff, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %d, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected error")
	}
	if !shouldUseTUI(uiModeOn, true) || shouldUseTUI(uiModeOff, false) {
		t.Error("explicit modes ignored")
	}
}

func TestRootWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.tsx"), "x = <a />;\n")
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	_, _, err := execute(t, dir, filepath.Join(dir, "a.tsx"), "--quiet", "--cpu-profile", cpu, "--mem-profile", mem)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, p := range []string{cpu, mem} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("profile %s: %v", p, err)
		}
	}
}

func TestRootShortDiagnostics(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "bad.tsx"), "x = <a></b>;\n")
	_, stderr, err := execute(t, dir, filepath.Join(dir, "bad.tsx"),
		"--diagnostics-format", "short", "--path-mode", "basename")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.HasPrefix(stderr, "bad.tsx:1:") || !strings.Contains(stderr, "error SYN2100") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRootJSONDiagnostics(t *testing.T) {
	dir := t.TempDir()
	_, stderr, err := execute(t, dir, "ast", filepath.Join(dir, "gone.tsx"), "--diagnostics-format", "json")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	var doc struct {
		Diagnostics []struct {
			Code string `json:"code"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(stderr), &doc); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, stderr)
	}
	if len(doc.Diagnostics) == 0 || doc.Diagnostics[0].Code != "IO5001" {
		t.Fatalf("diagnostics = %+v", doc.Diagnostics)
	}
}
