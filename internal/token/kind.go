package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier (including contextual keywords).
	Ident
	// PrivateName represents a class private name such as #count.
	PrivateName

	keywordBeg
	KwBreak
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDebugger
	KwDefault
	KwDelete
	KwDo
	KwElse
	KwEnum
	KwExport
	KwExtends
	KwFalse
	KwFinally
	KwFor
	KwFunction
	KwIf
	KwImport
	KwIn
	KwInstanceof
	KwLet
	KwNew
	KwNull
	KwReturn
	KwSuper
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypeof
	KwVar
	KwVoid
	KwWhile
	KwWith
	keywordEnd

	// NumberLit represents a numeric literal.
	NumberLit
	// BigIntLit represents a numeric literal with the n suffix.
	BigIntLit
	// StringLit represents a quoted string literal.
	StringLit
	// RegexLit represents a regular expression literal (produced by rescanning '/').
	RegexLit
	// NoSubstTemplate represents `text` without substitutions.
	NoSubstTemplate
	// TemplateHead represents `text${
	TemplateHead
	// TemplateMiddle represents }text${
	TemplateMiddle
	// TemplateTail represents }text`
	TemplateTail
	// JSXText represents raw markup text between tags.
	JSXText

	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Dot       // .
	DotDotDot // ...
	Semicolon // ;
	Comma     // ,
	Lt        // <
	Gt        // >
	LtEq      // <=
	GtEq      // >=
	EqEq      // ==
	BangEq    // !=
	EqEqEq    // ===
	BangEqEq  // !==
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	StarStar  // **
	PlusPlus  // ++
	MinusMinus
	Shl              // <<
	Shr              // >>
	UShr             // >>>
	Amp              // &
	Pipe             // |
	Caret            // ^
	Bang             // !
	Tilde            // ~
	AndAnd           // &&
	OrOr             // ||
	QuestionQuestion // ??
	Question         // ?
	QuestionDot      // ?.
	Colon            // :
	FatArrow         // =>
	At               // @

	assignBeg
	Assign                 // =
	PlusAssign             // +=
	MinusAssign            // -=
	StarAssign             // *=
	SlashAssign            // /=
	PercentAssign          // %=
	StarStarAssign         // **=
	ShlAssign              // <<=
	ShrAssign              // >>=
	UShrAssign             // >>>=
	AmpAssign              // &=
	PipeAssign             // |=
	CaretAssign            // ^=
	AndAndAssign           // &&=
	OrOrAssign             // ||=
	QuestionQuestionAssign // ??=
	assignEnd
)

var kindNames = map[Kind]string{
	Invalid:                "Invalid",
	EOF:                    "EOF",
	Ident:                  "Ident",
	PrivateName:            "PrivateName",
	NumberLit:              "NumberLit",
	BigIntLit:              "BigIntLit",
	StringLit:              "StringLit",
	RegexLit:               "RegexLit",
	NoSubstTemplate:        "NoSubstTemplate",
	TemplateHead:           "TemplateHead",
	TemplateMiddle:         "TemplateMiddle",
	TemplateTail:           "TemplateTail",
	JSXText:                "JSXText",
	LBrace:                 "{",
	RBrace:                 "}",
	LParen:                 "(",
	RParen:                 ")",
	LBracket:               "[",
	RBracket:               "]",
	Dot:                    ".",
	DotDotDot:              "...",
	Semicolon:              ";",
	Comma:                  ",",
	Lt:                     "<",
	Gt:                     ">",
	LtEq:                   "<=",
	GtEq:                   ">=",
	EqEq:                   "==",
	BangEq:                 "!=",
	EqEqEq:                 "===",
	BangEqEq:               "!==",
	Plus:                   "+",
	Minus:                  "-",
	Star:                   "*",
	Slash:                  "/",
	Percent:                "%",
	StarStar:               "**",
	PlusPlus:               "++",
	MinusMinus:             "--",
	Shl:                    "<<",
	Shr:                    ">>",
	UShr:                   ">>>",
	Amp:                    "&",
	Pipe:                   "|",
	Caret:                  "^",
	Bang:                   "!",
	Tilde:                  "~",
	AndAnd:                 "&&",
	OrOr:                   "||",
	QuestionQuestion:       "??",
	Question:               "?",
	QuestionDot:            "?.",
	Colon:                  ":",
	FatArrow:               "=>",
	At:                     "@",
	Assign:                 "=",
	PlusAssign:             "+=",
	MinusAssign:            "-=",
	StarAssign:             "*=",
	SlashAssign:            "/=",
	PercentAssign:          "%=",
	StarStarAssign:         "**=",
	ShlAssign:              "<<=",
	ShrAssign:              ">>=",
	UShrAssign:             ">>>=",
	AmpAssign:              "&=",
	PipeAssign:             "|=",
	CaretAssign:            "^=",
	AndAndAssign:           "&&=",
	OrOrAssign:             "||=",
	QuestionQuestionAssign: "??=",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	for word, kw := range keywords {
		if kw == k {
			return word
		}
	}
	return "Kind(?)"
}
