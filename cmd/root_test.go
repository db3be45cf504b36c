// Copyright © 2024 The junkcheck authors

package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_Subcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"check", "config", "pre-commit"})
	for _, name := range []string{"config", "color", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag: %s", name)
	}
}

func TestExitError(t *testing.T) {
	assert.EqualError(t, &ExitError{Code: 1}, "exit status 1")

	cause := errors.New("boom")
	err := error(&ExitError{Code: 2, Err: cause})
	assert.EqualError(t, err, "boom")
	assert.ErrorIs(t, err, cause)
}
