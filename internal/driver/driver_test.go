package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tsxlower/internal/config"
	"tsxlower/internal/diag"
	"tsxlower/internal/observ"
	"tsxlower/internal/source"
	"tsxlower/internal/trace"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func newDriver(t *testing.T, cfg config.Config, jobs int) *Driver {
	t.Helper()
	d, err := New(Options{Config: cfg, Jobs: jobs})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

// recordingSink collects events through a SinkFunc.
type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) sink() SinkFunc {
	return func(ev Event) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.events = append(s.events, ev)
	}
}

func TestRunWritesSiblings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tsx"), `const el = <div id="x" {...rest}>Hi {name}</div>;`)
	writeFile(t, filepath.Join(dir, "nested", "deep", "b.tsx"), "const f = <><A /></>;\n")
	writeFile(t, filepath.Join(dir, "skip.txt"), "not matched")

	d := newDriver(t, config.Default(), 2)
	res, err := d.Run(context.Background(), filepath.Join(dir, "**", "*.tsx"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("files = %+v", res.Files)
	}

	got := readFile(t, filepath.Join(dir, "a.ts"))
	want := "const el = React.createElement(\"div\", { id: \"x\", ...rest } as never, \"Hi \", name);\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("a.ts (-want +got):\n%s", diff)
	}
	got = readFile(t, filepath.Join(dir, "nested", "deep", "b.ts"))
	want = "const f = React.createElement(React.Fragment, null, React.createElement(A, null));\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("b.ts (-want +got):\n%s", diff)
	}

	for _, f := range res.Files {
		if f.Output != OutputPath(f.Input, ".ts") {
			t.Errorf("output %q for input %q", f.Output, f.Input)
		}
	}
	if res.Files[0].Stats.Elements != 1 || res.Files[1].Stats.Fragments != 1 {
		t.Errorf("stats = %+v, %+v", res.Files[0].Stats, res.Files[1].Stats)
	}
}

func TestRunLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tsx"), "x = <a />;\n")
	if _, err := newDriver(t, config.Default(), 1).Run(context.Background(), filepath.Join(dir, "*.tsx")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"a.ts", "a.tsx"}, names); diff != "" {
		t.Fatalf("directory (-want +got):\n%s", diff)
	}
}

func TestRunConfiguredExtensionAndIndent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tsx"), "function f() {\n  return <br />;\n}\n")
	cfg := config.Default()
	cfg.Output.Extension = ".js"
	cfg.Output.Indent = "\t"
	if _, err := newDriver(t, cfg, 1).Run(context.Background(), filepath.Join(dir, "a.tsx")); err != nil {
		t.Fatal(err)
	}
	want := "function f() {\n\treturn React.createElement(\"br\", null);\n}\n"
	if got := readFile(t, filepath.Join(dir, "a.js")); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRunRefusesToOverwriteInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "plain.ts")
	writeFile(t, input, "const a = 1;\n")

	_, err := newDriver(t, config.Default(), 1).Run(context.Background(), input)
	if !errors.Is(err, diag.ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
	var fe *diag.FileError
	if !errors.As(err, &fe) || fe.Code() != diag.IOOutputOverwritesInput {
		t.Fatalf("err = %v, want IOOutputOverwritesInput", err)
	}
	if got := readFile(t, input); got != "const a = 1;\n" {
		t.Fatalf("input modified: %q", got)
	}
}

func TestRunSyntaxErrorAbortsBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.tsx"), "const x = <div>;\n")
	for i := 0; i < 20; i++ {
		writeFile(t, filepath.Join(dir, "ok"+string(rune('a'+i))+".tsx"), "x = <a />;\n")
	}
	res, err := newDriver(t, config.Default(), 1).Run(context.Background(), filepath.Join(dir, "*.tsx"))
	if !errors.Is(err, diag.ErrSyntax) {
		t.Fatalf("err = %v, want ErrSyntax", err)
	}
	var fe *diag.FileError
	if !errors.As(err, &fe) || !strings.HasSuffix(fe.Path, "bad.tsx") {
		t.Fatalf("err = %v, want a FileError for bad.tsx", err)
	}
	if len(fe.Diagnostics) == 0 || fe.Diagnostics[0].Primary.Empty() {
		t.Fatalf("syntax error carries no span: %+v", fe.Diagnostics)
	}
	if res == nil || res.FileSet == nil {
		t.Fatal("failed run returned no file set")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "bad.ts")); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("output written for a failed file: %v", statErr)
	}
	// bad.tsx sorts first and there is one worker, so nothing else ran
	if len(res.Files) != 0 {
		t.Fatalf("files after abort = %d", len(res.Files))
	}
}

func TestRunLoweringErrorClass(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ns.tsx"), "x = <svg:rect />;\n")
	_, err := newDriver(t, config.Default(), 1).Run(context.Background(), filepath.Join(dir, "ns.tsx"))
	if !errors.Is(err, diag.ErrUnsupportedTagKind) {
		t.Fatalf("err = %v, want ErrUnsupportedTagKind", err)
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tsx"), "x = <a />;\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newDriver(t, config.Default(), 1).Run(ctx, filepath.Join(dir, "a.tsx"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestMatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.tsx"), "")
	writeFile(t, filepath.Join(dir, "a.tsx"), "")
	writeFile(t, filepath.Join(dir, "sub", "c.tsx"), "")
	if err := os.MkdirAll(filepath.Join(dir, "dir.tsx"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Match(filepath.Join(dir, "**", "*.tsx"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.tsx"),
		filepath.Join(dir, "b.tsx"),
		filepath.Join(dir, "sub", "c.tsx"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Match (-want +got):\n%s", diff)
	}

	none, err := Match(filepath.Join(dir, "*.jsx"))
	if err != nil || len(none) != 0 {
		t.Fatalf("no matches: %v, %v", none, err)
	}
	var de *diag.Error
	_, err = Match(filepath.Join(dir, "[a.tsx"))
	if !errors.As(err, &de) || de.Diagnostic.Code != diag.IOBadPattern {
		t.Fatalf("bad pattern: err = %v", err)
	}
	if !errors.Is(err, diag.ErrIO) {
		t.Fatalf("bad pattern is not an I/O error: %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct{ in, ext, want string }{
		{"a.tsx", ".ts", "a.ts"},
		{"dir/b.c.tsx", ".js", "dir/b.c.js"},
		{"noext", ".ts", "noext.ts"},
		{"x.ts", ".ts", "x.ts"},
	}
	for _, tc := range cases {
		if got := OutputPath(tc.in, tc.ext); got != tc.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tc.in, tc.ext, got, tc.want)
		}
	}
}

func TestProgressEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tsx")
	writeFile(t, path, "x = <a />;\n")
	rec := &recordingSink{}
	d, err := New(Options{Config: config.Default(), Jobs: 1, Progress: rec.sink()})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Run(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, ev := range rec.events {
		got = append(got, string(ev.Stage)+"/"+string(ev.Status))
	}
	want := []string{
		"parse/queued",
		"parse/working",
		"lower/working",
		"print/working",
		"write/working",
		"write/done",
		"/done",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
}

func TestRunTraceSpans(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tsx"), "x = <a />;\n")
	ring := trace.NewRingTracer(256, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := newDriver(t, config.Default(), 1).Run(ctx, filepath.Join(dir, "a.tsx")); err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			names = append(names, ev.Name)
		}
	}
	want := []string{"run", "file", "parse", "lower", "print", "write"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("spans (-want +got):\n%s", diff)
	}
}

func TestTransformDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tsx")
	writeFile(t, path, "x = <a />;\n")
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	out, err := newDriver(t, config.Default(), 1).Transform(context.Background(), fs, id)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(out.Text); got != "x = React.createElement(\"a\", null);\n" {
		t.Fatalf("text = %q", got)
	}
	if len(out.Timing.Stages) != 3 {
		t.Fatalf("stages = %+v", out.Timing.Stages)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.ts")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Transform wrote output: %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Lower.Factory = "not a path"
	if _, err := New(Options{Config: cfg}); !errors.Is(err, diag.ErrConfig) {
		t.Fatalf("err = %v, want ErrConfig", err)
	}
}

func TestTimingDiagnostic(t *testing.T) {
	d := TimingDiagnostic("", "a.tsx", observ.Report{
		TotalMS: 1.5,
		Stages:  []observ.Stage{{Name: "parse", DurationMS: 1.5}},
	})
	if d.Code != diag.ObsTimings || d.Severity != diag.SevInfo {
		t.Fatalf("diagnostic = %+v", d)
	}
	if !strings.Contains(d.Message, "a.tsx") || len(d.Notes) != 1 {
		t.Fatalf("diagnostic = %+v", d)
	}
	if !strings.Contains(d.Notes[0].Msg, `"kind":"file"`) {
		t.Fatalf("note = %s", d.Notes[0].Msg)
	}
}

func TestRunWithoutMatchesSucceeds(t *testing.T) {
	dir := t.TempDir()
	res, err := newDriver(t, config.Default(), 2).Run(context.Background(), filepath.Join(dir, "*.tsx"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res == nil || res.FileSet == nil || len(res.Files) != 0 {
		t.Fatalf("result = %+v", res)
	}
	warn := NoMatches("*.tsx")
	if warn.Severity != diag.SevWarning || warn.Code != diag.IONoMatches {
		t.Fatalf("warning = %+v", warn)
	}
}
