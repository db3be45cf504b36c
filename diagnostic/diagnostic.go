// Copyright © 2024 The junkcheck authors

// Package diagnostic renders findings as annotated source snippets in the
// style of the Rust compiler.  It does not depend on the scanner; callers
// convert their findings into Diagnostic values.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight.  Columns count
// runes, not bytes.
type Span struct {
	File   string // path for reading source; display name if unreadable
	Line   int    // 1-based line number, 0 if unknown
	Col    int    // 1-based start column
	EndCol int    // 1-based inclusive end column (0 = detect the identifier at Col)
	Label  string // text shown after the underline
}

// Diagnostic is a single finding with optional source annotations.
type Diagnostic struct {
	Severity Severity
	Code     string // shown in brackets after the severity, e.g. error[junk_checker]
	Message  string
	Spans    []Span
	Notes    []string // "= note:" lines
	Help     []string // "= help:" lines
}
