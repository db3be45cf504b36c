// Copyright © 2024 The junkcheck authors

package junk

import (
	"strings"

	"github.com/luthersystems/junkcheck/parser/token"
)

// Category is the part a token plays in deciding whether a name is called.
type Category int

const (
	Other Category = iota
	Identifier
	FunctionDeclarationKeyword
	StaticMemberOperator
	InstanceMemberOperator
	OpenParenthesis
)

func (c Category) String() string {
	switch c {
	case Other:
		return "other"
	case Identifier:
		return "identifier"
	case FunctionDeclarationKeyword:
		return "function-declaration-keyword"
	case StaticMemberOperator:
		return "static-member-operator"
	case InstanceMemberOperator:
		return "instance-member-operator"
	case OpenParenthesis:
		return "open-parenthesis"
	default:
		return "unknown"
	}
}

// Classify returns the category of a raw token.  A fully qualified name with
// a single segment (\var_dump) names a global function and is classified as
// an identifier; every other qualified name is Other.
func Classify(tok *token.Token) Category {
	switch tok.Type {
	case token.STRING:
		return Identifier
	case token.NAME_FULLY_QUALIFIED:
		if strings.Count(tok.Text, `\`) == 1 {
			return Identifier
		}
		return Other
	case token.FUNCTION:
		return FunctionDeclarationKeyword
	case token.DOUBLE_COLON:
		return StaticMemberOperator
	case token.OBJECT_OPERATOR, token.NULLSAFE_OBJECT_OPERATOR:
		return InstanceMemberOperator
	case token.PAREN_L:
		return OpenParenthesis
	default:
		return Other
	}
}
