// Copyright © 2024 The junkcheck authors

package junk

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Violation is a single junk call.
type Violation struct {
	Path string `json:"path"`
	Line int    `json:"line,omitempty"` // 0 when unknown
	Col  int    `json:"col,omitempty"`
	Name string `json:"name"`
}

// String returns the violation in go vet style: file:line:col: message.
func (v Violation) String() string {
	pos := v.Path
	if v.Line > 0 {
		pos = fmt.Sprintf("%s:%d", v.Path, v.Line)
		if v.Col > 0 {
			pos = fmt.Sprintf("%s:%d:%d", v.Path, v.Line, v.Col)
		}
	}
	return fmt.Sprintf("%s: junk call to %s", pos, v.Name)
}

// Style selects the message format used when reporting violations to a task
// runner.
type Style int

const (
	// StyleLine reports the file and line of each call.
	StyleLine Style = iota
	// StyleName reports the banned name and file of each call.
	StyleName
)

func (s Style) String() string {
	switch s {
	case StyleLine:
		return "line"
	case StyleName:
		return "name"
	default:
		return "unknown"
	}
}

// ParseStyle returns the Style named by s.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "line":
		return StyleLine, nil
	case "name":
		return StyleName, nil
	default:
		return StyleLine, fmt.Errorf("unknown message style: %q", s)
	}
}

// Format renders v as a single report line in the given style.
func (v Violation) Format(style Style) string {
	if style == StyleName {
		return fmt.Sprintf("- Junk %s detected in %s.", v.Name, v.Path)
	}
	return fmt.Sprintf("- Junk detected in %s, line %d.", v.Path, v.Line)
}

// Message joins the report lines for vs with newlines.
func Message(vs []Violation, style Style) string {
	lines := make([]string, len(vs))
	for i, v := range vs {
		lines[i] = v.Format(style)
	}
	return strings.Join(lines, "\n")
}

// FormatText writes violations in go vet text format.
func FormatText(w io.Writer, vs []Violation) {
	for _, v := range vs {
		fmt.Fprintln(w, v.String()) //nolint:errcheck // best-effort output to writer
	}
}

// FormatJSON writes violations as a JSON array.
func FormatJSON(w io.Writer, vs []Violation) error {
	if vs == nil {
		vs = []Violation{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(vs)
}
