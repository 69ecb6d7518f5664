package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"tsxlower/internal/diag"
	"tsxlower/internal/lower"
	"tsxlower/internal/observ"
	"tsxlower/internal/source"
	"tsxlower/internal/trace"
)

// FileResult describes one written output.
type FileResult struct {
	Input  string
	Output string
	Cached bool
	Stats  lower.Stats
	Timing observ.Report
}

// Result is the outcome of a batch. On failure it holds the files that
// finished before the batch was abandoned.
type Result struct {
	// FileSet holds every matched input; diagnostics resolve against it.
	FileSet *source.FileSet
	Files   []FileResult
	Elapsed time.Duration
}

// Match expands pattern into a sorted list of regular files. Patterns may
// use ** to cross directories. No match is not an error.
func Match(pattern string) ([]string, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, diag.NewError(diag.IOBadPattern, source.Span{},
			fmt.Sprintf("malformed pattern %q", pattern)).AsError()
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, diag.NewError(diag.IOBadPattern, source.Span{},
				fmt.Sprintf("malformed pattern %q", pattern)).AsError()
		}
		return nil, fmt.Errorf("expand %q: %w", pattern, err)
	}
	files := matches[:0]
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, m)
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// NoMatches is the warning for a pattern that matched nothing.
func NoMatches(pattern string) diag.Diagnostic {
	return diag.New(diag.SevWarning, diag.IONoMatches, source.Span{},
		fmt.Sprintf("pattern %q matched no files", pattern))
}

// OutputPath is the sibling of input with its extension replaced by ext.
func OutputPath(input, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

// Run transforms every file pattern matches.
func (d *Driver) Run(ctx context.Context, pattern string) (*Result, error) {
	files, err := Match(pattern)
	if err != nil {
		return &Result{FileSet: source.NewFileSet()}, err
	}
	return d.RunFiles(ctx, files)
}

// RunFiles transforms files with up to Jobs workers. The first failure
// cancels the rest of the batch and is returned.
func (d *Driver) RunFiles(ctx context.Context, files []string) (*Result, error) {
	started := time.Now()
	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "run", trace.CurrentSpan(ctx).SpanID)
	runSpan.WithExtra("files", fmt.Sprint(len(files)))
	defer runSpan.End("")

	// Создаём FileSet и предзагружаем все файлы
	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := Load(fileSet, path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}
	for _, path := range files {
		emit(d.sink, Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))
	done := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(d.jobs, max(len(files), 1)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fileStart := time.Now()
			var res FileResult
			var err error
			if loadErr, failed := loadErrors[path]; failed {
				err = loadErr
			} else {
				res, err = d.runFile(gctx, fileSet, fileIDs[path])
			}
			if err != nil {
				emit(d.sink, Event{File: path, Status: StatusError, Err: err, Elapsed: time.Since(fileStart)})
				return err
			}
			status := StatusDone
			if res.Cached {
				status = StatusCached
			}
			emit(d.sink, Event{File: path, Stage: StageWrite, Status: status, Elapsed: time.Since(fileStart)})
			results[i] = res
			done[i] = true
			return nil
		})
	}
	err := g.Wait()

	out := &Result{FileSet: fileSet, Elapsed: time.Since(started)}
	for i, ok := range done {
		if ok {
			out.Files = append(out.Files, results[i])
		}
	}
	status := StatusDone
	if err != nil {
		status = StatusError
	}
	emit(d.sink, Event{Status: status, Err: err, Elapsed: out.Elapsed})
	return out, err
}

// runFile transforms one loaded file and writes its output.
func (d *Driver) runFile(ctx context.Context, fs *source.FileSet, id source.FileID) (FileResult, error) {
	file := fs.Get(id)
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("path", file.Path)
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	outPath := OutputPath(file.Path, d.cfg.Output.Extension)
	if err := refuseOverwrite(file.Path, outPath); err != nil {
		return FileResult{}, err
	}

	out, err := d.Transform(ctx, fs, id)
	if err != nil {
		return FileResult{}, err
	}

	d.stage(file.Path, StageWrite)
	start := time.Now()
	wspan := trace.Begin(tracer, trace.ScopePass, "write", span.ID())
	err = writeAtomic(outPath, out.Text)
	wspan.End("")
	if err != nil {
		return FileResult{}, ioError(file.Path, diag.IOWriteFileError, "write "+outPath, err)
	}
	out.Timing = out.Timing.With(string(StageWrite), time.Since(start))

	return FileResult{
		Input:  file.Path,
		Output: outPath,
		Cached: out.Cached,
		Stats:  out.Stats,
		Timing: out.Timing,
	}, nil
}

// refuseOverwrite fails when the output path names the input file.
func refuseOverwrite(input, output string) error {
	in, err := filepath.Abs(input)
	if err != nil {
		return ioError(input, diag.IOLoadFileError, "resolve input path", err)
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return ioError(input, diag.IOWriteFileError, "resolve output path", err)
	}
	same := in == out
	if !same {
		if a, errA := os.Stat(in); errA == nil {
			if b, errB := os.Stat(out); errB == nil {
				same = os.SameFile(a, b)
			}
		}
	}
	if same {
		d := diag.NewError(diag.IOOutputOverwritesInput, source.Span{},
			fmt.Sprintf("output %s would overwrite the input", output))
		return diag.NewFileError(input, d)
	}
	return nil
}

// writeAtomic writes data next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmp)
		}
	}()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	committed = true
	return nil
}
