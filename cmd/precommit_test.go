// Copyright © 2024 The junkcheck authors

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/luthersystems/junkcheck/diagnostic"
	"github.com/luthersystems/junkcheck/junk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gitInit(t *testing.T, files map[string]string) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
	dir := writeTree(t, files)
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "test"},
		{"add", "."},
	} {
		c := exec.CommandContext(context.Background(), "git", args...)
		c.Dir = dir
		out, err := c.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
	return dir
}

func TestPreCommitCommand_DefaultFlags(t *testing.T) {
	cmd := PreCommitCommand()
	assert.Equal(t, "pre-commit [flags]", cmd.Use)
	for _, name := range []string{"junk", "triggered-by", "style", "json", "short", "workers", "dir"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestPreCommitCommand_Staged(t *testing.T) {
	dir := gitInit(t, map[string]string{
		"src/a.php":  "<?php\nvar_dump($x);\n",
		"README.md":  "var_dump()",
		"src/ok.php": "<?php $log->var_dump();\n",
	})
	// unstaged changes are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "ok.php"), []byte("<?php var_dump();\n"), 0o600))

	cmd := PreCommitCommand(WithConfig(junkConfig("var_dump")), WithColor(diagnostic.ColorNever))
	stdout, stderr, code := execute(t, cmd, "--dir", dir)
	assert.Equal(t, exitViolations, code)
	assert.Equal(t, "- Junk detected in src/a.php, line 2.\n", stdout)
	assert.Contains(t, stderr, "--> src/a.php:2:1")
	assert.Contains(t, stderr, " 2 |  var_dump($x);")
}

func TestPreCommitCommand_InjectedWorkersKept(t *testing.T) {
	files := make(map[string]string)
	for i := 0; i < 4; i++ {
		files[fmt.Sprintf("f%d.php", i)] = "<?php dd();\n"
	}
	dir := gitInit(t, files)
	tokenize, peak := overlapTokenizer()
	cmd := PreCommitCommand(
		WithConfig(junkConfig("dd")),
		WithScanOptions(junk.WithWorkers(1), tokenize),
		WithColor(diagnostic.ColorNever),
	)
	_, _, code := execute(t, cmd, "--dir", dir)
	assert.Equal(t, exitViolations, code)
	assert.Equal(t, int32(1), atomic.LoadInt32(peak))
}

func TestPreCommitCommand_Skipped(t *testing.T) {
	dir := gitInit(t, map[string]string{"README.md": "dd()"})
	cmd := PreCommitCommand(WithConfig(junkConfig("dd")))
	stdout, stderr, code := execute(t, cmd, "--dir", dir, "--json")
	assert.Equal(t, 0, code)
	assert.Equal(t, "[]\n", stdout)
	assert.Empty(t, stderr)
}

func TestPreCommitCommand_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	cmd := PreCommitCommand(WithConfig(junkConfig("dd")), WithColor(diagnostic.ColorNever))
	_, stderr, code := execute(t, cmd, "--dir", dir)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "error: git diff")
}

func TestPreCommitCommand_RejectsArgs(t *testing.T) {
	cmd := PreCommitCommand(WithConfig(junkConfig("dd")))
	cmd.SetArgs([]string{"a.php"})
	cmd.SetOut(&discard{})
	cmd.SetErr(&discard{})
	assert.Error(t, cmd.Execute())
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
