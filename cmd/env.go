// Copyright © 2024 The junkcheck authors

package cmd

import (
	"strings"
	"unicode"

	"github.com/luthersystems/junkcheck/config"
	"github.com/luthersystems/junkcheck/junk"
	"github.com/spf13/viper"
)

// Environment variables which override configuration file options.  List
// values are separated by commas or spaces.
var envOptions = []struct {
	option string
	env    string
}{
	{config.OptionTriggeredBy, "JUNKCHECK_TRIGGERED_BY"},
	{config.OptionJunks, "JUNKCHECK_JUNKS"},
	{config.OptionMessageStyle, "JUNKCHECK_MESSAGE_STYLE"},
}

func applyEnv(cfg *config.Config, v *viper.Viper) error {
	for _, e := range envOptions {
		key := "env_" + e.option
		if err := v.BindEnv(key, e.env); err != nil {
			return err
		}
		if !v.IsSet(key) {
			continue
		}
		value := v.GetString(key)
		switch e.option {
		case config.OptionTriggeredBy:
			cfg.TriggeredBy = splitList(value)
		case config.OptionJunks:
			cfg.Junks = splitList(value)
		case config.OptionMessageStyle:
			style, err := junk.ParseStyle(value)
			if err != nil {
				return &config.ConfigurationError{Option: e.option, Reason: e.env + ": " + err.Error()}
			}
			cfg.MessageStyle = style
		}
	}
	return nil
}

func splitList(s string) []string {
	list := strings.FieldsFunc(s, func(c rune) bool {
		return c == ',' || unicode.IsSpace(c)
	})
	if list == nil {
		return []string{}
	}
	return list
}
