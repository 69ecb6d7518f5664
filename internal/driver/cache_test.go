package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"tsxlower/internal/config"
	"tsxlower/internal/lower"
	"tsxlower/internal/version"
)

func TestCacheHitMiss(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	k1 := CacheKey([]byte("x = <a />;"), "fp")
	k2 := CacheKey([]byte("x = <b />;"), "fp")

	if _, ok, err := c.Get(k1); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	in := &CachePayload{Input: "a.tsx", Output: []byte("out"), Stats: lower.Stats{Elements: 1}}
	if err := c.Put(k1, in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(k1)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("payload (-put +got):\n%s", diff)
	}
	if _, ok, _ := c.Get(k2); ok {
		t.Fatal("expected miss on different content")
	}

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(k1); ok {
		t.Fatal("entry survived Clear")
	}
}

func TestCacheKeyInputs(t *testing.T) {
	base := CacheKey([]byte("src"), "fp")
	if base != CacheKey([]byte("src"), "fp") {
		t.Fatal("key is not deterministic")
	}
	if base == CacheKey([]byte("src"), "fp2") {
		t.Fatal("fingerprint does not change the key")
	}
	if base == CacheKey([]byte("src2"), "fp") {
		t.Fatal("content does not change the key")
	}
	// the separator keeps fingerprint and content apart
	if CacheKey([]byte("bc"), "a") == CacheKey([]byte("c"), "ab") {
		t.Fatal("fingerprint and content run together")
	}
}

func TestCacheCorruptEntry(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey([]byte("x"), "fp")
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(key); ok || err == nil {
		t.Fatalf("corrupt entry: ok=%v err=%v", ok, err)
	}
}

func TestCacheSchemaMismatchIsMiss(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey([]byte("x"), "fp")
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	// Put stamps the current schema, so encode a foreign one by hand
	data, err := msgpack.Marshal(&CachePayload{Schema: cacheSchemaVersion + 1, Output: []byte("stale")})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(key); ok || err != nil {
		t.Fatalf("foreign schema: ok=%v err=%v", ok, err)
	}
}

func TestRunUsesCache(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a.tsx")
	writeFile(t, input, "x = <a />;\n")
	cfg := config.Default()
	cfg.Driver.CacheDir = filepath.Join(dir, ".cache")

	first, err := newDriver(t, cfg, 1).Run(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].Cached {
		t.Fatal("first run hit the cache")
	}
	want := readFile(t, filepath.Join(dir, "a.ts"))
	if err := os.Remove(filepath.Join(dir, "a.ts")); err != nil {
		t.Fatal(err)
	}

	second, err := newDriver(t, cfg, 1).Run(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Files[0].Cached {
		t.Fatal("second run missed the cache")
	}
	if got := readFile(t, filepath.Join(dir, "a.ts")); got != want {
		t.Fatalf("cached output %q, want %q", got, want)
	}

	cfg.Lower.Factory = "h"
	third, err := newDriver(t, cfg, 1).Run(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	if third.Files[0].Cached {
		t.Fatal("factory change reused a cached output")
	}
	if got := readFile(t, filepath.Join(dir, "a.ts")); got != "x = h(\"a\", null);\n" {
		t.Fatalf("output after factory change = %q", got)
	}
}

func TestCacheDirRelativeToConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Driver.CacheDir = ".cache"
	if got := cacheDir(cfg); got != ".cache" {
		t.Fatalf("without config file: %q", got)
	}
	cfg.Path = filepath.Join("proj", "tsxlower.toml")
	if got, want := cacheDir(cfg), filepath.Join("proj", ".cache"); got != want {
		t.Fatalf("cacheDir = %q, want %q", got, want)
	}
}

func TestCacheMissAfterUpgrade(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a.tsx")
	writeFile(t, input, "x = <a />;\n")
	cfg := config.Default()
	cfg.Driver.CacheDir = filepath.Join(dir, ".cache")

	run := func() bool {
		t.Helper()
		res, err := newDriver(t, cfg, 1).Run(context.Background(), input)
		if err != nil {
			t.Fatal(err)
		}
		return res.Files[0].Cached
	}
	run()
	if !run() {
		t.Fatal("same build missed the cache")
	}

	old := version.Version
	t.Cleanup(func() { version.Version = old })
	version.Version = old + ".next"
	if run() {
		t.Fatal("a new build reused output cached by the old one")
	}
}
