// Copyright © 2024 The junkcheck authors

package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Renderer formats diagnostics as annotated source snippets.  Source files
// are read at most once per Renderer.  A Renderer is not safe for concurrent
// use.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)

	sources map[string][]string
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	r.writeHeader(ew, d, p)
	for _, span := range d.Spans {
		r.writeSpan(ew, span, p)
	}
	for _, note := range d.Notes {
		ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, note)
	}
	for _, help := range d.Help {
		ew.printf("   %s=%s help: %s\n", p.boldCyan, p.reset, help)
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter captures the first write error and drops everything after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (r *Renderer) writeHeader(ew *errWriter, d Diagnostic, p palette) {
	var sevColor string
	switch d.Severity {
	case SeverityError:
		sevColor = p.boldRed
	case SeverityWarning:
		sevColor = p.yellow
	case SeverityNote:
		sevColor = p.boldCyan
	}
	sev := d.Severity.String()
	if d.Code != "" {
		sev += "[" + d.Code + "]"
	}
	ew.printf("%s%s%s%s: %s%s%s\n",
		sevColor, p.bold, sev, p.reset,
		p.bold, d.Message, p.reset)
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc = fmt.Sprintf("%s:%d", span.File, span.Line)
		if span.Col > 0 {
			loc = fmt.Sprintf("%s:%d:%d", span.File, span.Line, span.Col)
		}
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	source, ok := r.sourceLine(span.File, span.Line)
	if !ok {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
		return
	}

	lineStr := strconv.Itoa(span.Line)
	pad := strings.Repeat(" ", len(lineStr))
	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
	ew.printf(" %s%s |%s  %s\n", p.boldBlue, lineStr, p.reset, strings.ReplaceAll(source, "\t", "    "))

	runes := []rune(source)
	col := span.Col
	if col <= 0 {
		col = 1
	}
	if col > len(runes)+1 {
		col = len(runes) + 1
	}
	endCol := span.EndCol
	if endCol <= 0 {
		endCol = detectEndCol(runes, col)
	}
	if endCol < col {
		endCol = col
	}
	if endCol > len(runes) && len(runes) >= col {
		endCol = len(runes)
	}
	underLen := 1
	if col <= len(runes) {
		underLen = displayWidth(runes[col-1 : endCol])
	}

	underPad := strings.Repeat(" ", displayWidth(runes[:col-1]))
	underline := strings.Repeat("^", underLen)
	ew.printf(" %s%s |%s  %s%s%s%s", p.boldBlue, pad, p.reset, underPad, p.boldRed, underline, p.reset)
	if span.Label != "" {
		ew.printf(" %s%s%s", p.boldRed, span.Label, p.reset)
	}
	ew.print("\n")
	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
}

// sourceLine returns line (1-based) of file without its line terminator.
func (r *Renderer) sourceLine(file string, line int) (string, bool) {
	if line <= 0 || file == "" {
		return "", false
	}
	lines, ok := r.sources[file]
	if !ok {
		reader := r.SourceReader
		if reader == nil {
			reader = func(name string) ([]byte, error) {
				return os.ReadFile(name) //nolint:gosec // reads user-specified source files for display
			}
		}
		data, err := reader(file)
		if err == nil {
			lines = strings.Split(string(data), "\n")
		}
		if r.sources == nil {
			r.sources = make(map[string][]string)
		}
		r.sources[file] = lines
	}
	if line > len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[line-1], "\r"), true
}

// detectEndCol returns the last column of the PHP name starting at col, or
// col itself when no name starts there.
func detectEndCol(runes []rune, col int) int {
	end := col - 1
	for end < len(runes) && isNameRune(runes[end]) {
		end++
	}
	if end == col-1 {
		return col
	}
	return end
}

func isNameRune(c rune) bool {
	return c == '_' || c == '\\' || c >= 0x80 || unicode.IsLetter(c) || unicode.IsDigit(c)
}

// displayWidth returns the display width of runes, expanding tabs to 4 spaces.
func displayWidth(runes []rune) int {
	w := 0
	for _, ch := range runes {
		if ch == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}

func fileFromWriter(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
