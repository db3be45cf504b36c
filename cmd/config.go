// Copyright © 2024 The junkcheck authors

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/luthersystems/junkcheck/config"
	"github.com/luthersystems/junkcheck/docs"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigCommand returns a command which prints the effective task options.
func ConfigCommand(opts ...Option) *cobra.Command {
	c := newCmdConfig(opts)
	var (
		flags scanFlags
		guide bool
	)
	cmd := &cobra.Command{
		Use:   "config [flags]",
		Short: "Show the effective junk_checker options",
		Long: `Show the effective junk_checker options and what they do.

Options are merged from, in increasing precedence: built-in defaults, the
configuration file, JUNKCHECK_TRIGGERED_BY, JUNKCHECK_JUNKS and
JUNKCHECK_MESSAGE_STYLE in the environment, and command line flags.

The output is a valid configuration file.  Use --guide to read how calls are
detected and which are allowed.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if guide {
				fmt.Fprint(cmd.OutOrStdout(), docs.Guide) //nolint:errcheck // best-effort output to writer
				return nil
			}
			stderr := cmd.ErrOrStderr()
			cfg, err := c.loadConfig()
			if err != nil {
				return c.fail(stderr, err, nil)
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return c.fail(stderr, err, nil)
			}
			source := "(none)"
			if c.config == nil {
				if used := c.configFileUsed(); used != "" {
					source = used
				}
			} else {
				source = "(embedded)"
			}
			writeConfig(cmd.OutOrStdout(), cfg, source)
			return nil
		},
	}
	flags.registerOptions(cmd)
	cmd.Flags().BoolVar(&guide, "guide", false, "Print the junk checker guide and exit.")
	return cmd
}

func (c *cmdConfig) configFileUsed() string {
	if c.viper != nil {
		return c.viper.ConfigFileUsed()
	}
	return viper.ConfigFileUsed()
}

// writeConfig writes cfg as a configuration file section, each option
// preceded by its documentation as a comment.
func writeConfig(w io.Writer, cfg *config.Config, source string) {
	fmt.Fprintf(w, "# config file: %s\n", source) //nolint:errcheck // best-effort output to writer
	fmt.Fprintln(w, "junk_checker:")              //nolint:errcheck // best-effort output to writer
	for _, opt := range config.Options {
		doc := "# " + strings.ReplaceAll(wordwrap.String(opt.Doc, 72), "\n", "\n# ")
		fmt.Fprintln(w, indent.String(doc, 2))                      //nolint:errcheck // best-effort output to writer
		fmt.Fprintf(w, "  %s: %s\n", opt.Name, cfg.Value(opt.Name)) //nolint:errcheck // best-effort output to writer
	}
}
