package parser

import (
	"context"
	"slices"

	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/lexer"
	"tsxlower/internal/source"
	"tsxlower/internal/token"
	"tsxlower/internal/trace"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit is reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File *ast.File
	Bag  *diag.Bag
}

// Parser holds the state for one file.
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	lastSpan source.Span // span of the last consumed token

	// speculation: while guessing > 0 diagnostics are swallowed and guessFailed
	// records that the attempt went wrong.
	guessing    int
	guessFailed bool

	inGenerator bool
	inAsync     bool
	noIn        bool // inside a for-statement head
}

// ParseFile parses the file behind lx. Diagnostics go to opts.Reporter; the
// returned Result carries the bag when the reporter is a BagReporter.
func ParseFile(ctx context.Context, fs *source.FileSet, lx *lexer.Lexer, opts Options) Result {
	file := lx.File()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("path", file.FormatPath("auto", fs.BaseDir()))
	defer span.End("")

	p := Parser{
		lx:       lx,
		file:     file,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}

	program := p.parseProgram()

	out := &ast.File{
		Path:     file.Path,
		Hashbang: lx.Hashbang(),
		Program:  program,
		Comments: convertComments(lx.Comments()),
	}

	var bag *diag.Bag
	if r, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = r.Bag
	}
	return Result{File: out, Bag: bag}
}

// ParseSource is a convenience wrapper that registers content in fs, parses
// it and collects diagnostics into a fresh bag.
func ParseSource(ctx context.Context, fs *source.FileSet, path string, content []byte, maxErrors uint) Result {
	id := fs.AddSource(path, content)
	return ParseLoaded(ctx, fs, id, maxErrors)
}

// ParseLoaded parses a file already registered in fs. It only reads fs, so
// several goroutines may parse different files of one set.
func ParseLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, maxErrors uint) Result {
	bag := diag.NewBag(int(max(maxErrors, 16)))
	rep := diag.Once(diag.BagReporter{Bag: bag})
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := ParseFile(ctx, fs, lx, Options{Reporter: rep, MaxErrors: maxErrors})
	res.Bag = bag
	return res
}

func convertComments(trivia []token.Trivia) []ast.Comment {
	out := make([]ast.Comment, 0, len(trivia))
	for _, t := range trivia {
		kind := ast.CommentLine
		if t.Kind == token.TriviaBlockComment {
			kind = ast.CommentBlock
		}
		out = append(out, ast.Comment{Kind: kind, Text: t.Text, Span: t.Span})
	}
	return out
}

func (p *Parser) parseProgram() *ast.Opaque {
	start := p.peek().Span.Start
	// modules allow top-level await
	p.inAsync = true
	body := p.parseStatementList(func() bool { return p.at(token.EOF) }, true)
	sp := source.Span{File: p.file.ID, Start: start, End: p.peek().Span.End}
	if start > sp.End {
		sp.Start = sp.End
	}
	return ast.NewOpaque(ast.KindProgram, sp, ast.F("body", ast.NodeList(body)))
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// atWord reports whether the current token is the identifier word. Used for
// contextual keywords such as "type", "of" or "async".
func (p *Parser) atWord(word string) bool {
	tok := p.lx.Peek()
	return tok.Kind == token.Ident && tok.Text == word
}

// peek2 returns the token after the current one.
func (p *Parser) peek2() token.Token {
	st := p.lx.Save()
	p.lx.Next()
	t := p.lx.Peek()
	p.lx.Restore(st)
	return t
}

// peekN returns the n-th token ahead (0 is the current token).
func (p *Parser) peekN(n int) token.Token {
	st := p.lx.Save()
	for range n {
		p.lx.Next()
	}
	t := p.lx.Peek()
	p.lx.Restore(st)
	return t
}

// speculate runs fn with diagnostics suppressed. When fn fails or anything
// is reported, the lexer is rewound and ok is false.
func speculate[T any](p *Parser, fn func() (T, bool)) (T, bool) {
	st := p.lx.Save()
	last := p.lastSpan
	failed := p.guessFailed
	lexErrs := p.lx.MutedErrors()
	p.guessing++
	p.guessFailed = false
	p.lx.Mute()
	v, ok := fn()
	p.lx.Unmute()
	bad := p.guessFailed || !ok || p.lx.MutedErrors() != lexErrs
	p.guessing--
	p.guessFailed = failed
	if bad {
		p.lx.Restore(st)
		p.lastSpan = last
		var zero T
		return zero, false
	}
	return v, true
}
