package lexer

import (
	"tsxlower/internal/source"
	"tsxlower/internal/token"
)

// Mode selects the scanning rules for the next token.
type Mode uint8

const (
	// ModeNormal scans host-language tokens.
	ModeNormal Mode = iota
	// ModeTag scans inside a markup tag: names may contain '-', strings
	// have no escapes.
	ModeTag
	// ModeChild scans markup children: everything up to '{' or '<' is one
	// JSXText token and no trivia is skipped.
	ModeChild
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeTag:
		return "tag"
	case ModeChild:
		return "child"
	}
	return "unknown"
}

type Lexer struct {
	file     *source.File
	cursor   Cursor
	opts     Options
	mode     Mode
	look     *token.Token // one-token lookahead buffer
	lookFrom uint32       // cursor offset before look was scanned
	comments []token.Trivia
	hashbang string

	muted      int
	mutedCount int
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
	lx.skipHashbang()
	return lx
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	from := lx.cursor.Off
	t := lx.scan()
	lx.look = &t
	lx.lookFrom = from
	return t
}

// Hashbang returns the "#!" line at the top of the file, if any.
func (lx *Lexer) Hashbang() string { return lx.hashbang }

// Mode returns the current scanning mode.
func (lx *Lexer) Mode() Mode { return lx.mode }

// SetMode switches the scanning rules. A buffered lookahead token was
// scanned under the old rules, so it is discarded and rescanned.
func (lx *Lexer) SetMode(m Mode) {
	lx.unread()
	lx.mode = m
}

// Mute suppresses diagnostics until the matching Unmute. Errors raised
// while muted are only counted.
func (lx *Lexer) Mute() { lx.muted++ }

// Unmute undoes one Mute.
func (lx *Lexer) Unmute() {
	if lx.muted > 0 {
		lx.muted--
	}
}

// MutedErrors returns how many diagnostics were swallowed so far.
func (lx *Lexer) MutedErrors() int { return lx.mutedCount }

// Comments returns every comment seen so far, in source order.
func (lx *Lexer) Comments() []token.Trivia {
	return lx.comments
}

// State is an opaque snapshot used for speculative parsing.
type State struct {
	off       uint32
	mode      Mode
	ncomments int
	look      *token.Token
	lookFrom  uint32
}

// Save captures the lexer position.
func (lx *Lexer) Save() State {
	st := State{
		off:       lx.cursor.Off,
		mode:      lx.mode,
		ncomments: len(lx.comments),
		lookFrom:  lx.lookFrom,
	}
	if lx.look != nil {
		t := *lx.look
		st.look = &t
	}
	return st
}

// Restore rewinds the lexer to a saved state. Comments recorded after the
// snapshot are forgotten; they will be recorded again when rescanned.
func (lx *Lexer) Restore(st State) {
	lx.cursor.Off = st.off
	lx.mode = st.mode
	lx.comments = lx.comments[:st.ncomments]
	lx.look = st.look
	lx.lookFrom = st.lookFrom
}

// rewind moves the cursor back to off and drops comments at or after it.
func (lx *Lexer) rewind(off uint32) {
	lx.look = nil
	lx.cursor.Off = off
	n := len(lx.comments)
	for n > 0 && lx.comments[n-1].Span.Start >= off {
		n--
	}
	lx.comments = lx.comments[:n]
}

func (lx *Lexer) unread() {
	if lx.look != nil {
		lx.rewind(lx.lookFrom)
	}
}

func (lx *Lexer) scan() token.Token {
	switch lx.mode {
	case ModeChild:
		return lx.scanChild()
	case ModeTag:
		nl := lx.skipTrivia()
		tok := lx.scanTagToken()
		tok.NewlineBefore = nl
		return tok
	default:
		nl := lx.skipTrivia()
		tok := lx.scanNormal()
		tok.NewlineBefore = nl
		return tok
	}
}

func (lx *Lexer) scanNormal() token.Token {
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch == '\\':
		return lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '"' || ch == '\'':
		return lx.scanString()
	case ch == '`':
		return lx.scanTemplate(lx.cursor.Mark(), true)
	case ch == '#':
		return lx.scanPrivateName()
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}
