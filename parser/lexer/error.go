// Copyright © 2024 The junkcheck authors

package lexer

import (
	"fmt"

	"github.com/luthersystems/junkcheck/parser/token"
)

// TokenizationError reports source text which could not be lexed.
type TokenizationError struct {
	Err    error
	Source *token.Location
}

func (err *TokenizationError) Error() string {
	if err.Source == nil {
		return err.Err.Error()
	}
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *TokenizationError) Unwrap() error {
	return err.Err
}
