// Package driver runs the parse, lower, print and write pipeline over the
// files a glob pattern selects.
package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"tsxlower/internal/ast"
	"tsxlower/internal/config"
	"tsxlower/internal/diag"
	"tsxlower/internal/format"
	"tsxlower/internal/lower"
	"tsxlower/internal/observ"
	"tsxlower/internal/parser"
	"tsxlower/internal/source"
	"tsxlower/internal/trace"
	"tsxlower/internal/version"
)

// DefaultMaxErrors bounds the syntax errors collected per file.
const DefaultMaxErrors = 64

type Options struct {
	Config config.Config
	// Jobs overrides Config.Driver.Jobs when positive.
	Jobs int
	// MaxErrors overrides DefaultMaxErrors when positive.
	MaxErrors uint
	// Progress receives per-file events. Optional.
	Progress ProgressSink
}

// Driver holds what every file of a run shares. It is safe for concurrent
// use.
type Driver struct {
	cfg       config.Config
	lowerOpts lower.Options
	printer   *format.Printer
	cache     *Cache
	cacheSalt string
	jobs      int
	maxErrors uint
	sink      ProgressSink
}

// New validates opts and prepares the printer and, when configured, the
// transform cache.
func New(opts Options) (*Driver, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	printer, err := format.New(format.Options{Indent: cfg.Output.Indent})
	if err != nil {
		return nil, err
	}
	d := &Driver{
		cfg:       cfg,
		lowerOpts: cfg.LowerOptions(),
		printer:   printer,
		jobs:      opts.Jobs,
		maxErrors: opts.MaxErrors,
		sink:      opts.Progress,
	}
	if d.jobs <= 0 {
		d.jobs = cfg.Driver.Jobs
	}
	if d.jobs <= 0 {
		d.jobs = runtime.GOMAXPROCS(0)
	}
	if d.maxErrors == 0 {
		d.maxErrors = DefaultMaxErrors
	}
	if dir := cacheDir(cfg); dir != "" {
		d.cache, err = OpenCache(dir)
		if err != nil {
			return nil, diag.NewError(diag.IOCacheError, source.Span{},
				fmt.Sprintf("open cache %s: %v", dir, err)).AsError()
		}
		d.cacheSalt = version.Fingerprint() + "\x00" + cfg.Fingerprint()
	}
	return d, nil
}

// cacheDir resolves a relative cache_dir against the configuration file.
func cacheDir(cfg config.Config) string {
	dir := cfg.Driver.CacheDir
	if dir == "" || filepath.IsAbs(dir) || cfg.Path == "" {
		return dir
	}
	return filepath.Join(filepath.Dir(cfg.Path), dir)
}

// Jobs returns the worker limit.
func (d *Driver) Jobs() int { return d.jobs }

// Cache returns the transform cache, nil when disabled.
func (d *Driver) Cache() *Cache { return d.cache }

// Output is the result of transforming one source.
type Output struct {
	Text   []byte
	Stats  lower.Stats
	Cached bool
	Timing observ.Report
}

// Load reads path into fs. Failures come back as a *diag.FileError.
func Load(fs *source.FileSet, path string) (source.FileID, error) {
	id, err := fs.Load(path)
	if err != nil {
		return 0, ioError(path, diag.IOLoadFileError, "read input", err)
	}
	return id, nil
}

// Parse parses file id of fs. Syntax errors come back as a *diag.FileError.
func (d *Driver) Parse(ctx context.Context, fs *source.FileSet, id source.FileID) (*ast.File, error) {
	file := fs.Get(id)
	res := parser.ParseLoaded(ctx, fs, id, d.maxErrors)
	if fe := diag.FromBag(file.Path, res.Bag); fe != nil {
		return nil, fe
	}
	return res.File, nil
}

// Lower parses and lowers file id of fs.
func (d *Driver) Lower(ctx context.Context, fs *source.FileSet, id source.FileID) (*ast.File, lower.Stats, error) {
	f, err := d.Parse(ctx, fs, id)
	if err != nil {
		return nil, lower.Stats{}, err
	}
	out, stats, err := lower.FileContext(ctx, f, d.lowerOpts)
	if err != nil {
		return nil, stats, fileError(fs.Get(id).Path, err)
	}
	return out, stats, nil
}

// Transform runs parse, lower and print on file id of fs, consulting the
// cache first. Nothing is written.
func (d *Driver) Transform(ctx context.Context, fs *source.FileSet, id source.FileID) (Output, error) {
	file := fs.Get(id)
	timer := observ.NewTimer()
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	var key Digest
	if d.cache != nil {
		key = CacheKey(file.Content, d.cacheSalt)
		payload, ok, err := d.cache.Get(key)
		if err != nil {
			// unreadable entries are overwritten below
			trace.Point(tracer, trace.ScopeFile, "cache", err.Error(), parent)
		}
		if ok {
			return Output{Text: payload.Output, Stats: payload.Stats, Cached: true, Timing: timer.Report()}, nil
		}
	}

	d.stage(file.Path, StageParse)
	stop := timer.Start(string(StageParse))
	f, err := d.Parse(ctx, fs, id)
	stop("")
	if err != nil {
		return Output{Timing: timer.Report()}, err
	}

	d.stage(file.Path, StageLower)
	stop = timer.Start(string(StageLower))
	lowered, stats, err := lower.FileContext(ctx, f, d.lowerOpts)
	stop(fmt.Sprintf("%d elements, %d fragments", stats.Elements, stats.Fragments))
	if err != nil {
		return Output{Timing: timer.Report()}, fileError(file.Path, err)
	}

	d.stage(file.Path, StagePrint)
	stop = timer.Start(string(StagePrint))
	span := trace.Begin(tracer, trace.ScopePass, "print", parent)
	text, err := d.printer.Print(lowered)
	span.End("")
	stop("")
	if err != nil {
		return Output{Timing: timer.Report()}, fileError(file.Path, err)
	}

	out := Output{Text: text, Stats: stats, Timing: timer.Report()}
	if d.cache != nil {
		payload := &CachePayload{Input: file.Path, Output: text, Stats: stats}
		if err := d.cache.Put(key, payload); err != nil {
			return out, ioError(file.Path, diag.IOCacheError, "store cache entry", err)
		}
	}
	return out, nil
}

func (d *Driver) stage(path string, stage Stage) {
	emit(d.sink, Event{File: path, Stage: stage, Status: StatusWorking})
}

// fileError lifts err into a *diag.FileError for path.
func fileError(path string, err error) error {
	var fe *diag.FileError
	if errors.As(err, &fe) {
		return fe
	}
	var de *diag.Error
	if errors.As(err, &de) {
		return diag.NewFileError(path, de.Diagnostic)
	}
	return &diag.FileError{Path: path, Err: err}
}

func ioError(path string, code diag.Code, what string, err error) error {
	d := diag.NewError(code, source.Span{}, what)
	return &diag.FileError{Path: path, Diagnostics: []diag.Diagnostic{d}, Err: err}
}
