// Copyright © 2024 The junkcheck authors

// Package config holds the validated options of the junk_checker task.
package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/luthersystems/junkcheck/junk"
	"github.com/spf13/viper"
)

// Option names as they appear in configuration files.
const (
	OptionTriggeredBy  = "triggered_by"
	OptionJunks        = "junks"
	OptionMessageStyle = "message_style"
)

// Options documents each option, in display order.
var Options = []struct {
	Name string
	Doc  string
}{
	{OptionTriggeredBy, "File extensions which are scanned. Files with any other extension are " +
		"ignored, and when no staged file matches the task is skipped. A leading dot is optional and " +
		"extensions compare without case."},
	{OptionJunks, "Names of functions which must not be called. Names are matched exactly and with " +
		"case. Declarations of a function with the same name and method or static calls such as " +
		"$logger->dump() or Debug::dump() are allowed. When empty the task is skipped."},
	{OptionMessageStyle, `Format of the task failure message. "line" reports the file and line of ` +
		`every call. "name" reports the banned name and file of every call.`},
}

// Keys under which Load looks for the task options.  The second is the layout
// of a GrumPHP configuration file.
var sectionKeys = []string{"junk_checker", "grumphp.tasks.junk_checker"}

// Config is the option set of the junk_checker task.
type Config struct {
	// TriggeredBy lists the file extensions which are scanned.
	TriggeredBy []string

	// Junks lists the banned function names.
	Junks []string

	// MessageStyle selects the task failure message format.
	MessageStyle junk.Style
}

// Default returns the configuration used when no options are given.
func Default() *Config {
	return &Config{
		TriggeredBy:  []string{"php"},
		Junks:        []string{},
		MessageStyle: junk.StyleLine,
	}
}

// ConfigurationError reports an option with an unsupported value.
type ConfigurationError struct {
	Option string
	Reason string
}

func (err *ConfigurationError) Error() string {
	if err.Option == "" {
		return "junk_checker: " + err.Reason
	}
	return fmt.Sprintf("junk_checker: option %q: %s", err.Option, err.Reason)
}

// Decode builds a Config from raw option values, applying defaults for absent
// options.  Every option must have the expected type and no unknown options
// may be present.
func Decode(raw map[string]interface{}) (*Config, error) {
	cfg := Default()
	var unknown []string
	for key, value := range raw {
		switch key {
		case OptionTriggeredBy:
			exts, err := stringList(key, value)
			if err != nil {
				return nil, err
			}
			cfg.TriggeredBy = exts
		case OptionJunks:
			junks, err := stringList(key, value)
			if err != nil {
				return nil, err
			}
			cfg.Junks = junks
		case OptionMessageStyle:
			s, ok := value.(string)
			if !ok {
				return nil, &ConfigurationError{Option: key, Reason: fmt.Sprintf("expected a string, got %T", value)}
			}
			style, err := junk.ParseStyle(s)
			if err != nil {
				return nil, &ConfigurationError{Option: key, Reason: err.Error()}
			}
			cfg.MessageStyle = style
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("undefined options %s; defined options are %q, %q, %q",
				strings.Join(unknown, ", "), OptionTriggeredBy, OptionJunks, OptionMessageStyle),
		}
	}
	return cfg, nil
}

func stringList(option string, value interface{}) ([]string, error) {
	switch value := value.(type) {
	case []string:
		return append([]string{}, value...), nil
	case []interface{}:
		list := make([]string, len(value))
		for i, elem := range value {
			s, ok := elem.(string)
			if !ok {
				return nil, &ConfigurationError{
					Option: option,
					Reason: fmt.Sprintf("expected a list of strings, element %d is %T", i, elem),
				}
			}
			list[i] = s
		}
		return list, nil
	default:
		return nil, &ConfigurationError{
			Option: option,
			Reason: fmt.Sprintf("expected a list of strings, got %T", value),
		}
	}
}

// Load reads the task options from v.  The junk_checker section takes
// precedence over grumphp.tasks.junk_checker.  When neither is present Load
// returns Default().
func Load(v *viper.Viper) (*Config, error) {
	for _, key := range sectionKeys {
		if !v.IsSet(key) {
			continue
		}
		section := v.Get(key)
		if section == nil {
			// "junk_checker:" with no options
			return Default(), nil
		}
		raw, ok := section.(map[string]interface{})
		if !ok {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("%s must be a map of options, got %T", key, section)}
		}
		return Decode(raw)
	}
	return Default(), nil
}

// Value returns the display form of the named option.
func (c *Config) Value(option string) string {
	switch option {
	case OptionTriggeredBy:
		return "[" + strings.Join(c.TriggeredBy, ", ") + "]"
	case OptionJunks:
		return "[" + strings.Join(c.Junks, ", ") + "]"
	case OptionMessageStyle:
		return c.MessageStyle.String()
	default:
		return ""
	}
}

// Names returns the configured junks as a set.
func (c *Config) Names() junk.NameSet {
	return junk.NewNameSet(c.Junks...)
}

// Matches reports whether path has one of the trigger extensions.  Extensions
// compare without case and with or without a leading dot.
func (c *Config) Matches(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}
	for _, want := range c.TriggeredBy {
		if strings.EqualFold(ext, strings.TrimPrefix(want, ".")) {
			return true
		}
	}
	return false
}

// Select returns the paths matched by c, in order.
func (c *Config) Select(paths []string) []string {
	var out []string
	for _, p := range paths {
		if c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
