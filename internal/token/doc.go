// Package token defines lexical token kinds and trivia for TypeScript sources with
// embedded markup.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - Contextual words (type, interface, as, from, of, get, set, async, ...) are lexed as
//     Ident; the parser recognizes them by text.
//   - Markup tokens (JSXText, tag-mode identifiers and strings) are only produced while the
//     lexer is switched into a markup mode by the parser.
//   - Comments never appear in the token stream; the lexer records them as Trivia.
package token
