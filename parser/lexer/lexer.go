// Copyright © 2024 The junkcheck authors

// Package lexer tokenizes PHP source into the raw token stream consumed by
// the junk checker.  It recognizes enough of the language to classify every
// byte of a file (inline HTML, comments, strings, heredocs, names and
// operators) but builds no syntax tree.
package lexer

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/luthersystems/junkcheck/parser/token"
)

type LexFn func(*Lexer) *token.Token

// operators lists multi-rune operators, longest first.
var operators = []string{
	"<=>", "**=", "...", "<<=", ">>=", "===", "!==", "??=",
	"++", "--", "==", "!=", "<>", "<=", ">=", "&&", "||", "??", "=>",
	"+=", "-=", "*=", "/=", ".=", "%=", "&=", "|=", "^=", "<<", ">>", "**",
}

var keywords = map[string]bool{
	"abstract": true, "and": true, "array": true, "as": true, "break": true,
	"callable": true, "case": true, "catch": true, "class": true, "clone": true,
	"const": true, "continue": true, "declare": true, "default": true, "die": true,
	"do": true, "echo": true, "else": true, "elseif": true, "empty": true,
	"enddeclare": true, "endfor": true, "endforeach": true, "endif": true,
	"endswitch": true, "endwhile": true, "eval": true, "exit": true, "extends": true,
	"final": true, "finally": true, "fn": true, "for": true, "foreach": true,
	"global": true, "goto": true, "if": true, "implements": true, "include": true,
	"include_once": true, "instanceof": true, "insteadof": true, "interface": true,
	"isset": true, "list": true, "match": true, "namespace": true, "new": true,
	"or": true, "print": true, "private": true, "protected": true, "public": true,
	"require": true, "require_once": true, "return": true, "static": true,
	"switch": true, "throw": true, "trait": true, "try": true, "unset": true,
	"use": true, "var": true, "while": true, "xor": true, "yield": true,
	"__class__": true, "__dir__": true, "__file__": true, "__function__": true,
	"__line__": true, "__method__": true, "__namespace__": true, "__trait__": true,
	"__halt_compiler": true,
}

var (
	castPattern    = regexp.MustCompile(`(?i)^\([ \t]*(int|integer|bool|boolean|float|double|real|string|binary|array|object|unset)[ \t]*\)`)
	heredocPattern = regexp.MustCompile(`^<<<[ \t]*(?:"(` + labelPattern + `)"|'(` + labelPattern + `)'|(` + labelPattern + `))\r?\n`)
)

const labelPattern = `[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*`

// Lexer produces PHP tokens one at a time from a token.Scanner.
type Lexer struct {
	scanner     *token.Scanner
	lex         LexFn
	quotes      []*quoteState // open strings, innermost last
	afterMember bool          // the last significant token was -> or ?->
	halting     bool          // __halt_compiler was seen
}

// quoteState tracks a string literal or heredoc being scanned.  While an
// interpolated expression ({$...} or ${...}) is open the lexer scans code and
// depth counts the unclosed braces inside it.
type quoteState struct {
	typ         token.Type
	quote       rune   // closing quote, zero for heredocs
	label       string // heredoc closing label
	interpolate bool
	lineStart   bool // a heredoc closing label may follow
	depth       int
}

// New returns a lexer positioned at the start of a file, outside of any PHP
// open tag.
func New(s *token.Scanner) *Lexer {
	return &Lexer{
		scanner: s,
		lex:     (*Lexer).readInlineHTML,
	}
}

// ReadToken returns the next token.  After the input is exhausted ReadToken
// returns EOF tokens indefinitely.
func (lex *Lexer) ReadToken() *token.Token {
	tok := lex.lex(lex)
	if tok.Type.IsTrivia() {
		return tok
	}
	lex.afterMember = tok.Type == token.OBJECT_OPERATOR || tok.Type == token.NULLSAFE_OBJECT_OPERATOR
	if tok.Type == token.KEYWORD && strings.EqualFold(tok.Text, "__halt_compiler") {
		lex.halting = true
	}
	if lex.halting && (tok.Text == ";" || tok.Type == token.CLOSE_TAG) {
		lex.lex = (*Lexer).readHaltedData
	}
	return tok
}

// Tokenize returns all tokens in src, excluding the terminal EOF.
func Tokenize(file string, src []byte) ([]*token.Token, error) {
	lex := New(token.NewScanner(file, src))
	var tokens []*token.Token
	for {
		tok := lex.ReadToken()
		switch tok.Type {
		case token.EOF:
			return tokens, nil
		case token.ERROR:
			return nil, &TokenizationError{Source: tok.Source, Err: errors.New(tok.Text)}
		}
		tokens = append(tokens, tok)
	}
}

func (lex *Lexer) readInlineHTML() *token.Token {
	for !lex.scanner.EOF() {
		if lex.atOpenTag() {
			if lex.scanner.Text() != "" {
				return lex.emitText(token.INLINE_HTML)
			}
			return lex.readOpenTag()
		}
		_ = lex.scanner.ScanRune()
	}
	if lex.scanner.Text() != "" {
		return lex.emitText(token.INLINE_HTML)
	}
	return lex.emit(token.EOF, "")
}

func (lex *Lexer) atOpenTag() bool {
	if lex.scanner.HasPrefix("<?=") {
		return true
	}
	la := lex.scanner.Lookahead(6)
	if len(la) < 5 || !strings.EqualFold(la[:5], "<?php") {
		return false
	}
	return len(la) == 5 || isSpace(rune(la[5]))
}

func (lex *Lexer) readOpenTag() *token.Token {
	if lex.scanner.AcceptString("<?=") {
		lex.lex = (*Lexer).readToken
		return lex.emitText(token.OPEN_TAG_WITH_ECHO)
	}
	lex.scanner.AcceptStringFold("<?php")
	if !lex.scanner.AcceptString("\r\n") {
		lex.scanner.Accept(isSpace)
	}
	lex.lex = (*Lexer).readToken
	return lex.emitText(token.OPEN_TAG)
}

func (lex *Lexer) readHaltedData() *token.Token {
	for !lex.scanner.EOF() {
		_ = lex.scanner.ScanRune()
	}
	lex.lex = (*Lexer).readEOF
	if lex.scanner.Text() == "" {
		return lex.emit(token.EOF, "")
	}
	return lex.emitText(token.INLINE_HTML)
}

func (lex *Lexer) readEOF() *token.Token {
	return lex.emit(token.EOF, "")
}

func (lex *Lexer) readToken() *token.Token {
	if lex.scanner.AcceptSeq(isSpace) > 0 {
		return lex.emitText(token.WHITESPACE)
	}
	if lex.scanner.EOF() {
		if len(lex.quotes) > 0 {
			return lex.errorf("unterminated string literal")
		}
		return lex.emit(token.EOF, "")
	}
	switch {
	case lex.scanner.HasPrefix("?>"):
		return lex.readCloseTag()
	case lex.scanner.AcceptString("#["):
		return lex.emitText(token.ATTRIBUTE)
	case lex.scanner.HasPrefix("//"), lex.scanner.HasPrefix("#"):
		return lex.readLineComment()
	case lex.scanner.HasPrefix("/*"):
		return lex.readBlockComment()
	case lex.scanner.HasPrefix("<<<"):
		if tok := lex.readHeredoc(); tok != nil {
			return tok
		}
	case lex.scanner.AcceptString("?->"):
		return lex.emitText(token.NULLSAFE_OBJECT_OPERATOR)
	case lex.scanner.AcceptString("->"):
		return lex.emitText(token.OBJECT_OPERATOR)
	case lex.scanner.AcceptString("::"):
		return lex.emitText(token.DOUBLE_COLON)
	}

	c, _ := lex.scanner.Peek()
	switch {
	case c == '$':
		return lex.readVariable()
	case c == '\'':
		return lex.readQuoted('\'', token.CONSTANT_STRING)
	case c == '"':
		return lex.readQuoted('"', token.ENCAPSED_STRING)
	case c == '`':
		return lex.readQuoted('`', token.BACKQUOTE_STRING)
	case isDigit(c):
		return lex.readNumber()
	case c == '.' && len(lex.scanner.Lookahead(2)) == 2 && isDigit(rune(lex.scanner.Lookahead(2)[1])):
		return lex.readNumber()
	case isLabelStart(c), c == '\\':
		return lex.readName()
	case c == '(':
		if m := castPattern.Find(lex.scanner.Remaining()); m != nil {
			lex.scanner.AcceptString(string(m))
			return lex.emitText(token.CAST)
		}
		return lex.charToken(token.PAREN_L)
	case c == ')':
		return lex.charToken(token.PAREN_R)
	case c == '[':
		return lex.charToken(token.BRACE_L)
	case c == ']':
		return lex.charToken(token.BRACE_R)
	case c == '{':
		if q := lex.embedded(); q != nil {
			q.depth++
		}
		return lex.charToken(token.CURLY_L)
	case c == '}':
		if q := lex.embedded(); q != nil {
			if q.depth == 0 {
				lex.lex = (*Lexer).readQuotedBody
			} else {
				q.depth--
			}
		}
		return lex.charToken(token.CURLY_R)
	}
	for _, op := range operators {
		if lex.scanner.AcceptString(op) {
			return lex.emitText(token.OPERATOR)
		}
	}
	return lex.charToken(token.OPERATOR)
}

func (lex *Lexer) readCloseTag() *token.Token {
	lex.scanner.AcceptString("?>")
	if !lex.scanner.AcceptString("\r\n") {
		lex.scanner.AcceptRune('\n')
	}
	lex.quotes = nil
	lex.lex = (*Lexer).readInlineHTML
	return lex.emitText(token.CLOSE_TAG)
}

// readLineComment scans a // or # comment.  The comment ends after a newline
// or before a close tag, whichever comes first.
func (lex *Lexer) readLineComment() *token.Token {
	for !lex.scanner.HasPrefix("?>") {
		c, ok := lex.scanner.Peek()
		if !ok {
			break
		}
		_ = lex.scanner.ScanRune()
		if c == '\n' {
			break
		}
	}
	return lex.emitText(token.COMMENT)
}

func (lex *Lexer) readBlockComment() *token.Token {
	typ := token.COMMENT
	if la := lex.scanner.Lookahead(4); len(la) == 4 && la[:3] == "/**" && isSpace(rune(la[3])) {
		typ = token.DOC_COMMENT
	}
	lex.scanner.AcceptString("/*")
	for !lex.scanner.AcceptString("*/") {
		if lex.scanner.ScanRune() != nil {
			return lex.errorf("unterminated comment")
		}
	}
	return lex.emitText(typ)
}

// readHeredoc scans a heredoc or nowdoc.  A nil return means the input at the
// scanner is not a heredoc header and nothing was consumed.
func (lex *Lexer) readHeredoc() *token.Token {
	m := heredocPattern.FindSubmatch(lex.scanner.Remaining())
	if m == nil {
		return nil
	}
	lex.scanner.AcceptString(string(m[0]))
	lex.quotes = append(lex.quotes, &quoteState{
		typ:         token.HEREDOC,
		label:       string(m[1]) + string(m[2]) + string(m[3]),
		interpolate: len(m[2]) == 0,
		lineStart:   true,
	})
	return lex.readQuotedBody()
}

// atHeredocEnd reports whether the unscanned input is the closing label,
// optionally indented, of a heredoc.
func (lex *Lexer) atHeredocEnd(label string) bool {
	rest := bytes.TrimLeft(lex.scanner.Remaining(), " \t")
	if !bytes.HasPrefix(rest, []byte(label)) {
		return false
	}
	rest = rest[len(label):]
	return len(rest) == 0 || !isLabel(rune(rest[0]))
}

func (lex *Lexer) readQuoted(quote rune, typ token.Type) *token.Token {
	lex.scanner.AcceptRune(quote)
	lex.quotes = append(lex.quotes, &quoteState{
		typ:         typ,
		quote:       quote,
		interpolate: quote != '\'',
	})
	return lex.readQuotedBody()
}

// readQuotedBody scans the innermost open string up to its end or the start
// of an interpolated expression.  Text on either side of an interpolation is
// emitted as separate tokens of the string's type.
func (lex *Lexer) readQuotedBody() *token.Token {
	q := lex.quotes[len(lex.quotes)-1]
	for {
		if q.label != "" && q.lineStart && lex.atHeredocEnd(q.label) {
			lex.scanner.AcceptSeqAny(" \t")
			lex.scanner.AcceptString(q.label)
			return lex.closeQuoted()
		}
		if lex.scanner.EOF() {
			if q.label != "" {
				return lex.errorf("unterminated heredoc %s", q.label)
			}
			return lex.errorf("unterminated string literal")
		}
		if q.interpolate && (lex.scanner.HasPrefix("{$") || lex.scanner.HasPrefix("${")) {
			q.lineStart = false
			lex.lex = (*Lexer).readEmbedStart
			if lex.scanner.Text() == "" {
				return lex.readEmbedStart()
			}
			return lex.emitText(q.typ)
		}
		_ = lex.scanner.ScanRune()
		c := lex.scanner.Rune()
		switch {
		case c == '\\':
			// "\{" is not an escape; the brace may still open an expression
			if next, ok := lex.scanner.Peek(); ok && !(q.interpolate && next == '{') {
				_ = lex.scanner.ScanRune()
				c = next
			}
		case q.quote != 0 && c == q.quote:
			return lex.closeQuoted()
		}
		q.lineStart = c == '\n'
	}
}

func (lex *Lexer) closeQuoted() *token.Token {
	q := lex.quotes[len(lex.quotes)-1]
	lex.quotes = lex.quotes[:len(lex.quotes)-1]
	lex.lex = (*Lexer).readToken
	return lex.emitText(q.typ)
}

func (lex *Lexer) readEmbedStart() *token.Token {
	if !lex.scanner.AcceptString("${") {
		lex.scanner.AcceptRune('{')
	}
	lex.lex = (*Lexer).readToken
	return lex.emitText(token.CURLY_L)
}

// embedded returns the string whose interpolated expression is being scanned,
// if any.
func (lex *Lexer) embedded() *quoteState {
	if len(lex.quotes) == 0 {
		return nil
	}
	return lex.quotes[len(lex.quotes)-1]
}

func (lex *Lexer) readVariable() *token.Token {
	lex.scanner.AcceptRune('$')
	if !lex.scanner.Accept(isLabelStart) {
		return lex.emitText(token.OPERATOR)
	}
	lex.scanner.AcceptSeq(isLabel)
	return lex.emitText(token.VARIABLE)
}

func (lex *Lexer) readNumber() *token.Token {
	switch {
	case lex.scanner.AcceptStringFold("0x"):
		lex.scanner.AcceptSeq(func(c rune) bool { return isHexDigit(c) || c == '_' })
		return lex.emitText(token.LNUMBER)
	case lex.scanner.AcceptStringFold("0b"):
		lex.scanner.AcceptSeqAny("01_")
		return lex.emitText(token.LNUMBER)
	case lex.scanner.AcceptStringFold("0o"):
		lex.scanner.AcceptSeqAny("01234567_")
		return lex.emitText(token.LNUMBER)
	}
	typ := token.LNUMBER
	lex.scanner.AcceptSeq(isDecimal)
	if lex.scanner.AcceptRune('.') {
		typ = token.DNUMBER
		lex.scanner.AcceptSeq(isDecimal)
	}
	if la := lex.scanner.Lookahead(3); len(la) >= 2 && (la[0] == 'e' || la[0] == 'E') {
		if isDigit(rune(la[1])) || (len(la) == 3 && (la[1] == '+' || la[1] == '-') && isDigit(rune(la[2]))) {
			typ = token.DNUMBER
			lex.scanner.AcceptAny("eE")
			lex.scanner.AcceptAny("+-")
			lex.scanner.AcceptSeq(isDecimal)
		}
	}
	return lex.emitText(typ)
}

func (lex *Lexer) readName() *token.Token {
	fully := lex.scanner.AcceptRune('\\')
	if !lex.scanner.Accept(isLabelStart) {
		return lex.emitText(token.OPERATOR)
	}
	lex.scanner.AcceptSeq(isLabel)
	segments := 1
	for {
		la := lex.scanner.Lookahead(2)
		if len(la) < 2 || la[0] != '\\' || !isLabelStart(rune(la[1])) {
			break
		}
		lex.scanner.AcceptRune('\\')
		lex.scanner.AcceptSeq(isLabel)
		segments++
	}
	text := lex.scanner.Text()
	lower := strings.ToLower(text)
	switch {
	case fully:
		return lex.emitText(token.NAME_FULLY_QUALIFIED)
	case segments > 1 && strings.HasPrefix(lower, `namespace\`):
		return lex.emitText(token.NAME_RELATIVE)
	case segments > 1:
		return lex.emitText(token.NAME_QUALIFIED)
	case lex.afterMember:
		return lex.emitText(token.STRING)
	case lower == "function":
		return lex.emitText(token.FUNCTION)
	case keywords[lower]:
		return lex.emitText(token.KEYWORD)
	default:
		return lex.emitText(token.STRING)
	}
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitText(typ token.Type) *token.Token {
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	_ = lex.scanner.ScanRune()
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	lex.lex = (*Lexer).readEOF
	return lex.emit(token.ERROR, fmt.Sprintf(format, v...))
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLabelStart(c rune) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c >= 0x80
}

func isLabel(c rune) bool {
	return isLabelStart(c) || isDigit(c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isDecimal(c rune) bool {
	return isDigit(c) || c == '_'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
