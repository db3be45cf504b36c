// Copyright © 2024 The junkcheck authors

package token

import "fmt"

// Token is a single lexical unit of PHP source.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	if tok.Source == nil {
		return fmt.Sprintf("%v %q", tok.Type, tok.Text)
	}
	return fmt.Sprintf("%v %v %q", tok.Source, tok.Type, tok.Text)
}

type Type uint

// Type constants produced by the PHP lexer.  Names follow the T_* constants
// of the PHP tokenizer extension where one exists.
const (
	INVALID Type = iota
	ERROR
	EOF

	INLINE_HTML
	OPEN_TAG
	OPEN_TAG_WITH_ECHO
	CLOSE_TAG
	WHITESPACE
	COMMENT
	DOC_COMMENT
	ATTRIBUTE

	// Names
	STRING // a bare label, T_STRING
	NAME_QUALIFIED
	NAME_FULLY_QUALIFIED
	NAME_RELATIVE
	VARIABLE
	FUNCTION
	KEYWORD

	// Literals
	LNUMBER
	DNUMBER
	CONSTANT_STRING
	ENCAPSED_STRING
	BACKQUOTE_STRING
	HEREDOC
	CAST

	// Operators
	DOUBLE_COLON
	OBJECT_OPERATOR
	NULLSAFE_OBJECT_OPERATOR
	OPERATOR

	// Delimiters
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R
	CURLY_L
	CURLY_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:                  "invalid",
		ERROR:                    "error",
		EOF:                      "EOF",
		INLINE_HTML:              "inline-html",
		OPEN_TAG:                 "<?php",
		OPEN_TAG_WITH_ECHO:       "<?=",
		CLOSE_TAG:                "?>",
		WHITESPACE:               "whitespace",
		COMMENT:                  "comment",
		DOC_COMMENT:              "doc-comment",
		ATTRIBUTE:                "#[",
		STRING:                   "string",
		NAME_QUALIFIED:           "name-qualified",
		NAME_FULLY_QUALIFIED:     "name-fully-qualified",
		NAME_RELATIVE:            "name-relative",
		VARIABLE:                 "variable",
		FUNCTION:                 "function",
		KEYWORD:                  "keyword",
		LNUMBER:                  "int",
		DNUMBER:                  "float",
		CONSTANT_STRING:          "constant-string",
		ENCAPSED_STRING:          "encapsed-string",
		BACKQUOTE_STRING:         "backquote-string",
		HEREDOC:                  "heredoc",
		CAST:                     "cast",
		DOUBLE_COLON:             "::",
		OBJECT_OPERATOR:          "->",
		NULLSAFE_OBJECT_OPERATOR: "?->",
		OPERATOR:                 "operator",
		PAREN_L:                  "(",
		PAREN_R:                  ")",
		BRACE_L:                  "[",
		BRACE_R:                  "]",
		CURLY_L:                  "{",
		CURLY_R:                  "}",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// IsTrivia reports whether tokens of type typ carry no program structure.
func (typ Type) IsTrivia() bool {
	switch typ {
	case WHITESPACE, COMMENT, DOC_COMMENT, INLINE_HTML:
		return true
	}
	return false
}

type Location struct {
	File string // a name representing the source stream
	Pos  int    // byte offset of the first byte of the token
	Line int    // line number (starting at 1 when tracked)
	Col  int    // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
