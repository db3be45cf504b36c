// Copyright © 2024 The junkcheck authors

package cmd

import (
	"github.com/luthersystems/junkcheck/config"
	"github.com/luthersystems/junkcheck/diagnostic"
	"github.com/luthersystems/junkcheck/junk"
	"github.com/luthersystems/junkcheck/task"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Option configures an exported command factory (CheckCommand,
// PreCommitCommand, ConfigCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	config   *config.Config
	viper    *viper.Viper
	color    *diagnostic.ColorMode
	logger   *log.Entry
	scanOpts []junk.Option
}

func newCmdConfig(opts []Option) *cmdConfig {
	c := &cmdConfig{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithConfig makes the command use cfg instead of loading options from the
// configuration file and environment.  Command line flags still apply.
func WithConfig(cfg *config.Config) Option {
	return func(c *cmdConfig) { c.config = cfg }
}

// WithViper loads options from v instead of the global viper instance.
func WithViper(v *viper.Viper) Option {
	return func(c *cmdConfig) { c.viper = v }
}

// WithColor overrides the --color flag of the root command.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *cmdConfig) { c.color = &mode }
}

// WithLogger sets the logger used by the task.
func WithLogger(entry *log.Entry) Option {
	return func(c *cmdConfig) { c.logger = entry }
}

// WithScanOptions passes opts to every scan the command runs.
func WithScanOptions(opts ...junk.Option) Option {
	return func(c *cmdConfig) { c.scanOpts = append(c.scanOpts, opts...) }
}

// loadConfig returns a private copy of the effective task options.
func (c *cmdConfig) loadConfig() (*config.Config, error) {
	if c.config != nil {
		cfg := *c.config
		cfg.TriggeredBy = append([]string{}, c.config.TriggeredBy...)
		cfg.Junks = append([]string{}, c.config.Junks...)
		return &cfg, nil
	}
	v := c.viper
	if v == nil {
		v = viper.GetViper()
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	return cfg, applyEnv(cfg, v)
}

func (c *cmdConfig) colorMode() (diagnostic.ColorMode, error) {
	if c.color != nil {
		return *c.color, nil
	}
	return diagnostic.ParseColorMode(colorFlag)
}

func (c *cmdConfig) checker(cfg *config.Config) *task.JunkChecker {
	jc := task.NewJunkChecker().WithConfig(cfg).WithScanOptions(c.scanOpts...)
	if c.logger != nil {
		jc = jc.WithLogger(c.logger)
	}
	return jc
}
