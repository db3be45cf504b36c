// Copyright © 2024 The junkcheck authors

package junk

import (
	"strings"

	"github.com/luthersystems/junkcheck/parser/token"
)

// Token is a member of the relevant token stream.
type Token struct {
	Category Category
	Text     string

	// Source is nil for synthetic tokens.
	Source *token.Location
}

// Line returns the 1-based source line of t, or 0 when t is synthetic.
func (t Token) Line() int {
	if t.Source == nil {
		return 0
	}
	return t.Source.Line
}

// Col returns the 1-based source column of t, or 0 when t is synthetic.
func (t Token) Col() int {
	if t.Source == nil {
		return 0
	}
	return t.Source.Col
}

// Relevant reduces raw tokens to those that can influence call detection, in
// their original order.  Every literal "(" becomes a synthetic
// OpenParenthesis token without a source location.  Adjacency in the
// returned stream, not in raw, is what "immediately followed by" means to
// ScanTokens.
func Relevant(raw []*token.Token) []Token {
	stream := make([]Token, 0, len(raw)/2)
	for _, tok := range raw {
		cat := Classify(tok)
		switch cat {
		case Other:
			continue
		case OpenParenthesis:
			stream = append(stream, Token{Category: OpenParenthesis, Text: "("})
		default:
			stream = append(stream, Token{
				Category: cat,
				Text:     strings.TrimPrefix(tok.Text, `\`),
				Source:   tok.Source,
			})
		}
	}
	return stream
}
