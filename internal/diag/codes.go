package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegex        Code = 1006
	LexBadEscape                Code = 1007

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectType         Code = 2005
	SynUnclosedParen      Code = 2006
	SynUnclosedBrace      Code = 2007
	SynUnclosedBracket    Code = 2008
	SynExpectColon        Code = 2009
	SynInvalidAssignment  Code = 2010
	SynUnexpectedTopLevel Code = 2011

	// markup syntax
	SynMarkupTagMismatch    Code = 2100
	SynMarkupUnclosed       Code = 2101
	SynMarkupExpectTagName  Code = 2102
	SynMarkupBadAttribute   Code = 2103
	SynMarkupEmptyAttrValue Code = 2104
	SynMarkupAdjacent       Code = 2105

	// Lowering
	LowInfo                     Code = 3000
	LowUnsupportedTagKind       Code = 3001
	LowUnsupportedAttributeKind Code = 3002

	// Printing
	PrnInfo            Code = 4000
	PrnUnknownNodeKind Code = 4001

	// I/O
	IOLoadFileError         Code = 5001
	IOWriteFileError        Code = 5002
	IOOutputOverwritesInput Code = 5003
	IOCacheError            Code = 5004
	IONoMatches             Code = 5005
	IOBadPattern            Code = 5006

	// Configuration
	CfgInvalid    Code = 6001
	CfgUnknownKey Code = 6002

	// Observability
	ObsInfo    Code = 7000
	ObsTimings Code = 7001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexUnterminatedTemplate:     "Unterminated template literal",
		LexUnterminatedRegex:        "Unterminated regular expression",
		LexBadEscape:                "Invalid escape sequence",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectSemicolon:          "Expected ';'",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectExpression:         "Expected expression",
		SynExpectType:               "Expected type",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynUnclosedBracket:          "Unclosed bracket",
		SynExpectColon:              "Expected ':'",
		SynInvalidAssignment:        "Invalid assignment target",
		SynUnexpectedTopLevel:       "Unexpected top-level token",
		SynMarkupTagMismatch:        "Closing tag does not match opening tag",
		SynMarkupUnclosed:           "Unclosed element",
		SynMarkupExpectTagName:      "Expected tag name",
		SynMarkupBadAttribute:       "Malformed attribute",
		SynMarkupEmptyAttrValue:     "Attribute value must be a non-empty expression",
		SynMarkupAdjacent:           "Adjacent elements must be wrapped in an enclosing tag",
		LowInfo:                     "Lowering information",
		LowUnsupportedTagKind:       "Unsupported tag name kind",
		LowUnsupportedAttributeKind: "Unsupported attribute kind",
		PrnInfo:                     "Printer information",
		PrnUnknownNodeKind:          "No print rule for node kind",
		IOLoadFileError:             "I/O load file error",
		IOWriteFileError:            "I/O write file error",
		IOOutputOverwritesInput:     "Output path equals input path",
		IOCacheError:                "Transform cache error",
		IONoMatches:                 "Pattern matched no files",
		IOBadPattern:                "Malformed glob pattern",
		CfgInvalid:                  "Invalid configuration",
		CfgUnknownKey:               "Unknown configuration key",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LOW%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("PRN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Located reports whether diagnostics with this code point into a source
// file. I/O, configuration and observability diagnostics have no span.
func (c Code) Located() bool {
	return c > UnknownCode && c < 5000
}
