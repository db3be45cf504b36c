// Copyright © 2024 The junkcheck authors

package cmd

import (
	"github.com/luthersystems/junkcheck/task"
	"github.com/spf13/cobra"
)

// PreCommitCommand returns a command which scans the files staged in a git
// repository.  It is meant to be run from a git pre-commit hook.
func PreCommitCommand(opts ...Option) *cobra.Command {
	c := newCmdConfig(opts)
	var (
		flags scanFlags
		dir   string
	)
	cmd := &cobra.Command{
		Use:   "pre-commit [flags]",
		Short: "Check the files staged for commit",
		Long: `Check the files staged for commit for calls to banned functions.

Added, copied, modified and renamed files with one of the triggered_by
extensions are scanned as they appear in the index, so edits which are not
staged do not affect the result.  The task is skipped when no staged file
matches or no junks are configured.

To install as a hook:
  printf '#!/bin/sh\nexec junkcheck pre-commit\n' > .git/hooks/pre-commit
  chmod +x .git/hooks/pre-commit`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
			format, err := outputFormat(flags.json, flags.short)
			if err != nil {
				return c.fail(stderr, err, nil)
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return c.fail(stderr, err, nil)
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return c.fail(stderr, err, nil)
			}

			ctx := cmd.Context()
			pc, err := task.NewGitPreCommitContext(ctx, dir)
			if err != nil {
				return c.fail(stderr, err, nil)
			}
			jc := c.checker(cfg).WithScanOptions(flags.scanOptions(cmd)...)
			if !jc.CanRunInContext(pc) {
				return nil
			}
			res, err := jc.Run(ctx, pc)
			if err != nil {
				return c.fail(stderr, err, pc.ReadFile)
			}
			return c.report(stdout, stderr, res, pc, format)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory inside the git work tree to check.")
	return cmd
}
