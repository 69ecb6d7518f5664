// Package diag defines the diagnostic model shared by every phase.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string ID (LEX/SYN/LOW/PRN/IO/CFG/OBS prefixes), a message, a primary
// source span and optional notes.
//
// Phases emit through a Reporter so they do not depend on storage. The lexer
// and parser report every finding into a Bag via BagReporter; lowering and
// printing stop at the first problem and return it as an *Error. The driver
// lifts both into a *FileError carrying the input path.
//
// Each code belongs to one error class (ErrSyntax, ErrUnsupportedTagKind,
// ErrUnsupportedAttributeKind, ErrUnknownNodeKind, ErrIO, ErrConfig) so that
// callers can branch with errors.Is without inspecting codes.
//
// Package diag performs no formatting or IO; rendering lives in
// internal/diagfmt.
package diag
