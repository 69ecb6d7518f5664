// Package config loads tsxlower.toml.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"tsxlower/internal/diag"
	"tsxlower/internal/lower"
	"tsxlower/internal/source"
)

// FileName is the name searched for by Find.
const FileName = "tsxlower.toml"

// Config is the decoded configuration file. Zero fields take defaults.
type Config struct {
	Lower  LowerConfig  `toml:"lower"`
	Output OutputConfig `toml:"output"`
	Driver DriverConfig `toml:"driver"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

type LowerConfig struct {
	Factory   string `toml:"factory"`
	Fragment  string `toml:"fragment"`
	CastProps *bool  `toml:"cast_props"`
	CastType  string `toml:"cast_type"`
}

type OutputConfig struct {
	Extension string `toml:"extension"`
	Indent    string `toml:"indent"`
}

type DriverConfig struct {
	Jobs     int    `toml:"jobs"`
	CacheDir string `toml:"cache_dir"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	cfg := Config{}
	cfg.fill()
	return cfg
}

func (c *Config) fill() {
	def := lower.DefaultOptions()
	if c.Lower.Factory == "" {
		c.Lower.Factory = def.Factory
	}
	if c.Lower.Fragment == "" {
		c.Lower.Fragment = def.Fragment
	}
	if c.Lower.CastProps == nil {
		v := def.CastProps
		c.Lower.CastProps = &v
	}
	if c.Lower.CastType == "" {
		c.Lower.CastType = def.CastType
	}
	if c.Output.Extension == "" {
		c.Output.Extension = ".ts"
	}
	if c.Output.Indent == "" {
		c.Output.Indent = "  "
	}
}

// LowerOptions returns the lowering options the configuration selects.
func (c Config) LowerOptions() lower.Options {
	opts := lower.Options{
		Factory:  c.Lower.Factory,
		Fragment: c.Lower.Fragment,
		CastType: c.Lower.CastType,
	}
	if c.Lower.CastProps != nil {
		opts.CastProps = *c.Lower.CastProps
	}
	return opts
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if err := c.LowerOptions().Validate(); err != nil {
		return invalid(c.Path, err.Error())
	}
	if !strings.HasPrefix(c.Output.Extension, ".") || len(c.Output.Extension) < 2 {
		return invalid(c.Path, fmt.Sprintf("[output].extension %q must start with '.'", c.Output.Extension))
	}
	if strings.ContainsAny(c.Output.Extension, `/\`) {
		return invalid(c.Path, fmt.Sprintf("[output].extension %q must not contain a path separator", c.Output.Extension))
	}
	if strings.Trim(c.Output.Indent, " \t") != "" {
		return invalid(c.Path, fmt.Sprintf("[output].indent %q must be spaces or tabs", c.Output.Indent))
	}
	if c.Driver.Jobs < 0 {
		return invalid(c.Path, fmt.Sprintf("[driver].jobs must not be negative, got %d", c.Driver.Jobs))
	}
	return nil
}

// Fingerprint is a stable digest of every setting that changes the output.
// The transform cache keys on it.
func (c Config) Fingerprint() string {
	opts := c.LowerOptions()
	h := sha256.New()
	for _, part := range []string{
		opts.Factory, opts.Fragment, fmt.Sprint(opts.CastProps), opts.CastType,
		c.Output.Indent,
	} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Find walks up from startDir to locate tsxlower.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path, applies defaults and validates the result. Keys the
// configuration does not know are an error.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, invalid(path, "failed to parse TOML: "+err.Error())
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		d := diag.NewError(diag.CfgUnknownKey, source.Span{}, "unknown keys: "+strings.Join(keys, ", "))
		return Config{}, fmt.Errorf("%s: %w", path, d.AsError())
	}
	cfg.Path = path
	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve loads explicit when it is set, otherwise the nearest
// tsxlower.toml above startDir, otherwise the defaults.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func invalid(path, msg string) error {
	err := diag.NewError(diag.CfgInvalid, source.Span{}, msg).AsError()
	if path == "" {
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}
