package format

import (
	"errors"
	"fmt"
	"slices"

	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
	"tsxlower/internal/source"
)

// Rule emits one opaque node.
type Rule func(e *Emitter, n *ast.Opaque)

type Options struct {
	// Indent is written once per nesting level. Defaults to two spaces.
	Indent string
	// Rules add to or replace the built-in rules. A nil Rule removes the
	// built-in rule for that kind.
	Rules map[string]Rule
}

func (o Options) withDefaults() Options {
	if o.Indent == "" {
		o.Indent = "  "
	}
	return o
}

// Printer renders files. It is safe for concurrent use once built.
type Printer struct {
	opt   Options
	rules map[string]Rule
}

// New builds a printer and checks that every opaque kind has a rule.
func New(opt Options) (*Printer, error) {
	opt = opt.withDefaults()
	rules := builtinRules()
	for kind, r := range opt.Rules {
		if r == nil {
			delete(rules, kind)
			continue
		}
		rules[kind] = r
	}
	var missing []string
	for _, kind := range ast.OpaqueKinds() {
		if rules[kind] == nil {
			missing = append(missing, kind)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		d := diag.NewError(diag.PrnUnknownNodeKind, source.Span{},
			fmt.Sprintf("no print rule for %d node kinds: %v", len(missing), missing))
		return nil, d.AsError()
	}
	return &Printer{opt: opt, rules: rules}, nil
}

// Print renders f, including its hashbang and comments.
func (p *Printer) Print(f *ast.File) ([]byte, error) {
	if f == nil || f.Program == nil {
		return nil, errors.New("format: nil file")
	}
	e := &Emitter{
		rules:    p.rules,
		writer:   NewWriter(p.opt.Indent, 4096),
		comments: f.Comments,
	}
	if f.Hashbang != "" {
		e.writer.WriteString(f.Hashbang)
		e.writer.Newline()
	}
	e.statements(f.Program.Nodes("body"), ^uint32(0))
	e.writer.Newline()
	if e.err != nil {
		return nil, e.err
	}
	return e.writer.Bytes(), nil
}

// Emitter is the state of one Print call. Rules write through it.
type Emitter struct {
	rules    map[string]Rule
	writer   *Writer
	comments []ast.Comment
	next     int // first comment not yet emitted
	err      error
}

// Write appends s verbatim.
func (e *Emitter) Write(s string) {
	e.writer.WriteString(s)
}

// Node emits n through its rule. Nil nodes emit nothing.
func (e *Emitter) Node(n ast.Node) {
	if n == nil {
		return
	}
	o, ok := n.(*ast.Opaque)
	if !ok {
		e.fail(n, fmt.Sprintf("markup node %s cannot be printed", n.Kind()))
		return
	}
	r := e.rules[o.Type]
	if r == nil {
		e.fail(n, fmt.Sprintf("no print rule for node kind %s", o.Type))
		return
	}
	r(e, o)
}

func (e *Emitter) fail(n ast.Node, msg string) {
	if e.err != nil {
		return
	}
	e.err = diag.NewError(diag.PrnUnknownNodeKind, n.Pos(), msg).AsError()
	e.writer.WriteString("/*?*/")
}

func builtinRules() map[string]Rule {
	rules := make(map[string]Rule, 160)
	for _, table := range []map[string]Rule{
		statementRules(),
		moduleRules(),
		declRules(),
		expressionRules(),
		callRules(),
		patternRules(),
		templateRules(),
		typeRules(),
	} {
		for k, r := range table {
			rules[k] = r
		}
	}
	return rules
}
