package lexer

import (
	"tsxlower/internal/diag"
	"tsxlower/internal/source"
)

type Options struct {
	// Reporter receives lexical diagnostics. When nil, errors are dropped
	// but lexing continues.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.muted > 0 {
		lx.mutedCount++
		return
	}
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
