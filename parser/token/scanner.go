// Copyright © 2024 The junkcheck authors

package token

import (
	"bytes"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from an in-memory source file.
// Source files handed to the junk checker are always fully buffered (staged
// blobs or files read from disk) so the scanner never reads incrementally.
type Scanner struct {
	file string
	src  []byte

	start     int // offset of the first byte of the current token
	startLine int // line number at start
	startCol  int // column number at start

	pos  int // offset of the next rune to be scanned
	line int // line number at pos
	col  int // column number at pos

	c rune // the last rune scanned
}

// NewScanner initializes and returns a new Scanner over src.
func NewScanner(file string, src []byte) *Scanner {
	return &Scanner{
		file:      file,
		src:       src,
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.pos
	s.startLine = s.line
	s.startCol = s.col
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return string(s.src[s.start:s.pos])
}

// Rune returns the last rune scanned.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned.  Peek returns a false second value
// at EOF.  A byte which does not begin a valid utf-8 sequence is returned as
// utf8.RuneError, so legacy single byte encodings scan like any other non-ASCII
// text.
func (s *Scanner) Peek() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	c, _ := utf8.DecodeRune(s.src[s.pos:])
	return c, true
}

// HasPrefix reports whether the unscanned input begins with literal.
func (s *Scanner) HasPrefix(literal string) bool {
	return bytes.HasPrefix(s.src[s.pos:], []byte(literal))
}

// Lookahead returns up to n bytes of unscanned input without scanning them.
func (s *Scanner) Lookahead(n int) string {
	end := s.pos + n
	if end > len(s.src) {
		end = len(s.src)
	}
	return string(s.src[s.pos:end])
}

// Remaining returns the unscanned input.  The returned slice must not be
// modified.
func (s *Scanner) Remaining() []byte {
	return s.src[s.pos:]
}

// HasPrefixFold is HasPrefix under ASCII case folding.
func (s *Scanner) HasPrefixFold(literal string) bool {
	if len(s.src)-s.pos < len(literal) {
		return false
	}
	return strings.EqualFold(string(s.src[s.pos:s.pos+len(literal)]), literal)
}

// ScanRune scans the next rune into the current token.  An invalid utf-8 byte
// is scanned alone and counts as one column.
func (s *Scanner) ScanRune() error {
	if s.pos >= len(s.src) {
		return io.ErrUnexpectedEOF
	}
	c, n := utf8.DecodeRune(s.src[s.pos:])
	s.c = c
	s.pos += n
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

// EOF reports whether all input has been scanned.
func (s *Scanner) EOF() bool {
	return s.pos >= len(s.src)
}

func (s *Scanner) Accept(fn func(rune) bool) bool {
	peek, ok := s.Peek()
	if !ok || !fn(peek) {
		return false
	}
	return s.ScanRune() == nil
}

func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(peek rune) bool { return peek == c })
}

func (s *Scanner) AcceptAny(charset string) bool {
	return s.Accept(func(peek rune) bool { return strings.ContainsRune(charset, peek) })
}

func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

func (s *Scanner) AcceptSeqAny(charset string) int {
	var n int
	for s.AcceptAny(charset) {
		n++
	}
	return n
}

func (s *Scanner) AcceptSeqDigit() int {
	return s.AcceptSeq(func(c rune) bool { return '0' <= c && c <= '9' })
}

func (s *Scanner) AcceptSeqSpace() int {
	return s.AcceptSeq(unicode.IsSpace)
}

// AcceptString scans literal if the unscanned input begins with it.  Unlike a
// rune-by-rune match nothing is consumed when literal does not match.
func (s *Scanner) AcceptString(literal string) bool {
	if !s.HasPrefix(literal) {
		return false
	}
	for range literal {
		if s.ScanRune() != nil {
			return false
		}
	}
	return true
}

// AcceptStringFold is AcceptString under ASCII case folding.
func (s *Scanner) AcceptStringFold(literal string) bool {
	if !s.HasPrefixFold(literal) {
		return false
	}
	for range literal {
		if s.ScanRune() != nil {
			return false
		}
	}
	return true
}

// LocStart returns a Location referencing the beginning of the current token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the next rune to be scanned.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}
