package lower

import (
	"context"
	"fmt"

	"tsxlower/internal/ast"
	"tsxlower/internal/trace"
)

// Attach builds the output file around root. The comment slice is shared
// with the caller as is; the printer places each comment by its offset.
func Attach(root *ast.Opaque, comments []ast.Comment) *ast.File {
	return &ast.File{Program: root, Comments: comments}
}

// File lowers a whole file. The result shares Path, Hashbang and the comment
// slice with f; the program is a new tree.
func File(f *ast.File, opts Options) (*ast.File, Stats, error) {
	return FileContext(context.Background(), f, opts)
}

// FileContext is File with tracing: the tracer in ctx receives a "lower"
// span and, at debug level, one point per markup node.
func FileContext(ctx context.Context, f *ast.File, opts Options) (*ast.File, Stats, error) {
	if f == nil || f.Program == nil {
		return nil, Stats{}, fmt.Errorf("lower: nil file")
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "lower", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")

	w := NewWalker(opts)
	if tracer.Level().ShouldEmit(trace.ScopeNode) {
		w.tracer = tracer
		w.parent = span.ID()
	}
	root, err := w.Rewrite(f.Program)
	if err != nil {
		return nil, w.Stats(), err
	}
	prog, ok := root.(*ast.Opaque)
	if !ok {
		return nil, w.Stats(), fmt.Errorf("lower: program rewrote to %s", root.Kind())
	}
	out := Attach(prog, f.Comments)
	out.Path = f.Path
	out.Hashbang = f.Hashbang
	return out, w.Stats(), nil
}
