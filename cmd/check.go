// Copyright © 2024 The junkcheck authors

package cmd

import (
	"github.com/luthersystems/junkcheck/config"
	"github.com/luthersystems/junkcheck/junk"
	"github.com/luthersystems/junkcheck/task"
	"github.com/spf13/cobra"
)

// scanFlags are the flags shared by the check and pre-commit commands.
type scanFlags struct {
	junks       []string
	triggeredBy []string
	style       string
	json        bool
	short       bool
	workers     int
}

// registerOptions adds the flags which override task options.
func (f *scanFlags) registerOptions(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.junks, "junk", nil,
		"Banned function name, added to the configured junks (may be repeated).")
	cmd.Flags().StringSliceVar(&f.triggeredBy, "triggered-by", nil,
		"Comma-separated file extensions to scan, replacing the configured list.")
	cmd.Flags().StringVar(&f.style, "style", "",
		`Task message style: "line" or "name" (default from configuration).`)
}

func (f *scanFlags) register(cmd *cobra.Command) {
	f.registerOptions(cmd)
	cmd.Flags().BoolVar(&f.json, "json", false,
		"Output violations as JSON.")
	cmd.Flags().BoolVar(&f.short, "short", false,
		"Output one file:line:col line per violation.")
	cmd.Flags().IntVar(&f.workers, "workers", 0,
		"Number of files scanned concurrently (default: number of CPUs).")
}

// apply overrides the options in cfg with the flags given on the command line.
func (f *scanFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("triggered-by") {
		cfg.TriggeredBy = append([]string{}, f.triggeredBy...)
	}
	cfg.Junks = append(cfg.Junks, f.junks...)
	if f.style != "" {
		style, err := junk.ParseStyle(f.style)
		if err != nil {
			return &config.ConfigurationError{Option: config.OptionMessageStyle, Reason: err.Error()}
		}
		cfg.MessageStyle = style
	}
	return nil
}

// scanOptions returns the scan options set on the command line.  Options
// injected with WithScanOptions apply unless a flag overrides them.
func (f *scanFlags) scanOptions(cmd *cobra.Command) []junk.Option {
	var opts []junk.Option
	if cmd.Flags().Changed("workers") {
		opts = append(opts, junk.WithWorkers(f.workers))
	}
	return opts
}

// CheckCommand returns a command which scans files on disk.  The scan always
// runs, whatever the context restrictions of the task.
func CheckCommand(opts ...Option) *cobra.Command {
	c := newCmdConfig(opts)
	var (
		flags    scanFlags
		excludes []string
	)
	cmd := &cobra.Command{
		Use:   "check [flags] [files | dir/...]",
		Short: "Check PHP files on disk for junk calls",
		Long: `Check PHP files on disk for calls to banned functions.

Arguments are file paths or directory patterns ending in "/..." which expand
to every file below the directory with one of the triggered_by extensions.
With no arguments the current directory is checked ("./...").  Explicit files
are filtered by extension too.

Violations are rendered as annotated source snippets on stderr, followed by
the task message on stdout.

Exit codes:
  0  No junk found, or nothing to check
  1  Junk calls were reported
  2  Bad configuration, unparsable source or unreadable files

Examples:
  junkcheck check --junk var_dump --junk dd src/...
  junkcheck check --exclude vendor --exclude 'generated_*' ./...
  junkcheck check --json --junk dump index.php`,
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

			if len(args) == 0 {
				args = []string{"./..."}
			}
			paths, err := expandArgs(args, cfg.Matches)
			if err != nil {
				return c.fail(stderr, err, nil)
			}
			rc := &task.RunContext{FileSet: task.FileSet{Paths: filterExcludes(paths, excludes)}}

			jc := c.checker(cfg).WithScanOptions(flags.scanOptions(cmd)...)
			res, err := jc.Run(cmd.Context(), rc)
			if err != nil {
				return c.fail(stderr, err, rc.ReadFile)
			}
			return c.report(stdout, stderr, res, rc, format)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
	return cmd
}
