package diag

import "tsxlower/internal/source"

// Reporter receives findings from the lexer and the parser.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(code Code, sev Severity, primary source.Span, msg string, notes []Note)

func (f ReporterFunc) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	f(code, sev, primary, msg, notes)
}

// BagReporter stores findings in Bag; a nil Bag discards them.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}

type reportKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// Once forwards each distinct code, severity, span and message to next a
// single time. Parser recovery can revisit the same token repeatedly.
func Once(next Reporter) Reporter {
	seen := map[reportKey]bool{}
	return ReporterFunc(func(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
		k := reportKey{code, sev, primary, msg}
		if seen[k] || next == nil {
			return
		}
		seen[k] = true
		next.Report(code, sev, primary, msg, notes)
	})
}
