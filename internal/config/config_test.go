package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tsxlower/internal/diag"
	"tsxlower/internal/lower"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if diff := cmp.Diff(lower.DefaultOptions(), cfg.LowerOptions()); diff != "" {
		t.Fatalf("lower options (-want +got):\n%s", diff)
	}
	if cfg.Output.Extension != ".ts" || cfg.Output.Indent != "  " {
		t.Fatalf("output = %+v", cfg.Output)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[lower]
factory = "h"
fragment = "Fragment"
cast_props = false

[output]
extension = ".js"

[driver]
jobs = 3
cache_dir = ".cache"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := lower.Options{Factory: "h", Fragment: "Fragment", CastProps: false, CastType: "never"}
	if diff := cmp.Diff(want, cfg.LowerOptions()); diff != "" {
		t.Fatalf("lower options (-want +got):\n%s", diff)
	}
	if cfg.Output.Extension != ".js" || cfg.Output.Indent != "  " {
		t.Fatalf("output = %+v", cfg.Output)
	}
	if cfg.Driver.Jobs != 3 || cfg.Driver.CacheDir != ".cache" {
		t.Fatalf("driver = %+v", cfg.Driver)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "[lower]\nfactori = \"h\"\n", "lower.factori"},
		{"unknown table", "[extra]\nx = 1\n", "extra"},
		{"bad factory", "[lower]\nfactory = \"React..createElement\"\n", "factory"},
		{"bad extension", "[output]\nextension = \"ts\"\n", "extension"},
		{"bad indent", "[output]\nindent = \"--\"\n", "indent"},
		{"negative jobs", "[driver]\njobs = -1\n", "jobs"},
		{"bad toml", "[lower\n", "TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.body)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, diag.ErrConfig) {
				t.Fatalf("err = %v, want ErrConfig", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %q, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", got, ok, err)
	}
	if got != path {
		t.Fatalf("Find = %q, want %q", got, path)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Resolve("", dir)
	if err != nil {
		t.Fatalf("Resolve without file: %v", err)
	}
	if cfg.Path != "" && !strings.HasPrefix(dir, filepath.Dir(cfg.Path)) {
		t.Fatalf("unexpected config %q", cfg.Path)
	}

	explicit := writeConfig(t, t.TempDir(), "[lower]\nfactory = \"h\"\n")
	cfg, err = Resolve(explicit, dir)
	if err != nil {
		t.Fatalf("Resolve explicit: %v", err)
	}
	if cfg.Lower.Factory != "h" {
		t.Fatalf("factory = %q", cfg.Lower.Factory)
	}
}

func TestFingerprint(t *testing.T) {
	a := Default()
	b := Default()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("equal configs fingerprint differently")
	}
	b.Lower.Factory = "h"
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatal("factory does not change the fingerprint")
	}
	c := Default()
	c.Driver.Jobs = 8
	c.Output.Extension = ".js"
	if a.Fingerprint() != c.Fingerprint() {
		t.Fatal("settings that do not change the output changed the fingerprint")
	}
}
