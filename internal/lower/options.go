package lower

import (
	"fmt"
	"strings"

	"tsxlower/internal/ast"
	"tsxlower/internal/lexer"
	"tsxlower/internal/source"
)

// Options control the shape of the emitted calls.
type Options struct {
	// Factory is the dotted path of the element factory.
	Factory string
	// Fragment is the dotted path passed as the tag of a fragment call.
	Fragment string
	// CastProps wraps non-empty props objects in a cast to CastType.
	CastProps bool
	// CastType is a keyword type such as never or a dotted type name.
	CastType string
}

// DefaultOptions returns the React classic runtime settings.
func DefaultOptions() Options {
	return Options{
		Factory:   "React.createElement",
		Fragment:  "React.Fragment",
		CastProps: true,
		CastType:  "never",
	}
}

// Validate checks that every path is a dotted identifier path.
func (o Options) Validate() error {
	if err := ValidatePath(o.Factory); err != nil {
		return fmt.Errorf("factory: %w", err)
	}
	if err := ValidatePath(o.Fragment); err != nil {
		return fmt.Errorf("fragment: %w", err)
	}
	if o.CastProps {
		if err := ValidatePath(o.CastType); err != nil {
			return fmt.Errorf("cast type: %w", err)
		}
	}
	return nil
}

// ValidatePath reports whether path looks like a.b.c.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	for _, seg := range strings.Split(path, ".") {
		if !lexer.IsIdentifierName(seg) {
			return fmt.Errorf("%q is not a dotted identifier path", path)
		}
	}
	return nil
}

var keywordTypes = map[string]bool{
	"never":   true,
	"any":     true,
	"unknown": true,
	"object":  true,
}

func (o Options) castType(span source.Span) ast.Node {
	if keywordTypes[o.CastType] {
		return ast.NewKeywordType(o.CastType, span)
	}
	return ast.NewTypeReference(o.CastType, span)
}
