// Copyright © 2024 The junkcheck authors

package cmd

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "junkcheck",
	Short: "Reject commits which call banned PHP functions",
	Long: `junkcheck finds calls to banned ("junk") functions such as var_dump or dd
in PHP source files, so that debugging leftovers never reach a commit.

Getting started:
  junkcheck check --junk var_dump src/...     Check files on disk
  junkcheck pre-commit                        Check the files staged for commit
  junkcheck config                            Show the effective options

A call is reported when a banned name is immediately followed by an opening
parenthesis.  Declarations of a function with the same name, method calls
($x->dump()), nullsafe calls ($x?->dump()) and static calls (Foo::dump())
are not reported, nor are names inside comments or strings.

Options are read from the junk_checker section of .junkcheck.yaml in the
current or home directory, or from the grumphp.tasks.junk_checker section of
a GrumPHP configuration file given with --config:

  junk_checker:
    triggered_by: [php]
    junks: [var_dump, dump, dd]

Exit codes:
  0  No junk found, or nothing to check
  1  Junk calls were reported
  2  Bad configuration, unparsable source or invalid invocation`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// ExitError is returned by a command which has already reported its outcome
// and only needs the process to exit with Code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

const (
	exitViolations = 1
	exitFailure    = 2
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./.junkcheck.yaml or $HOME/.junkcheck.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log task decisions to stderr.")

	rootCmd.AddCommand(CheckCommand())
	rootCmd.AddCommand(PreCommitCommand())
	rootCmd.AddCommand(ConfigCommand())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".junkcheck")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("junkcheck")
	viper.AutomaticEnv() // read in environment variables that match

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	case errors.As(err, &notFound):
		log.Debug("No config file found")
	default:
		fmt.Fprintf(os.Stderr, "junkcheck: %v\n", err)
		os.Exit(exitFailure)
	}
}
