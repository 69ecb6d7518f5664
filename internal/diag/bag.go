package diag

import (
	"cmp"
	"slices"

	"tsxlower/internal/source"
)

// Bag collects diagnostics up to a limit and counts what it turned away.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag keeps at most limit diagnostics; limit < 1 is treated as 1.
func NewBag(limit int) *Bag {
	return &Bag{limit: max(limit, 1)}
}

// Add keeps d if there is room and reports whether it did.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) == b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Dropped is the number of diagnostics Add refused.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the stored diagnostics; the slice must not be modified.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, isError)
}

// First returns the earliest error, or the earliest diagnostic of any
// severity when there is no error.
func (b *Bag) First() (Diagnostic, bool) {
	if i := slices.IndexFunc(b.items, isError); i >= 0 {
		return b.items[i], true
	}
	if len(b.items) == 0 {
		return Diagnostic{}, false
	}
	return b.items[0], true
}

// Errors returns the error diagnostics in order.
func (b *Bag) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range b.items {
		if isError(d) {
			out = append(out, d)
		}
	}
	return out
}

// Sort orders by file and position, errors before warnings at the same
// span, then by code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic for each code and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := map[key]bool{}
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if seen[k] {
			return true
		}
		seen[k] = true
		return false
	})
}

func isError(d Diagnostic) bool { return d.Severity >= SevError }
