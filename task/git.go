// Copyright © 2024 The junkcheck authors

package task

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// NewGitPreCommitContext returns a context over the files staged in the git
// work tree containing dir.  Added, copied, modified and renamed files are
// included; deletions are not.  File content is read from the index, so
// unstaged edits are never scanned.  Paths are relative to the top of the
// work tree.
func NewGitPreCommitContext(ctx context.Context, dir string) (*PreCommitContext, error) {
	out, err := git(ctx, dir, "diff", "--cached", "--name-only", "--diff-filter=ACMR", "-z")
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, p := range strings.Split(string(out), "\x00") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return &PreCommitContext{FileSet{
		Paths: paths,
		Read: func(path string) ([]byte, error) {
			return git(ctx, dir, "show", ":"+path)
		},
	}}, nil
}

func git(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("git %s: %w", args[0], err)
		}
		return nil, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
	}
	return out, nil
}
