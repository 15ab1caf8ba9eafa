// Package settings loads the tool's own settings from defaults, an optional
// settings file, COMMENTVARS_* environment variables and command-line flags,
// in increasing order of priority.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. COMMENTVARS_VARIANT.
	EnvPrefix = "COMMENTVARS"
	// DefaultConfigFile is the variables document used when none is given.
	DefaultConfigFile = "comments.yaml"
	// SettingsName is the base name of the optional settings file.
	SettingsName = ".commentvars"
)

// Setting keys, shared with the flag names that override them.
const (
	KeyConfig   = "config"
	KeyVariant  = "variant"
	KeyLogLevel = "log-level"
	KeyPatterns = "patterns"
)

// Settings holds the resolved tool settings.
type Settings struct {
	// Config is the path of the variables document.
	Config string `mapstructure:"config"`
	// Variant selects a variation; empty means the core data.
	Variant string `mapstructure:"variant"`
	// LogLevel is a charmbracelet/log level name.
	LogLevel string `mapstructure:"log-level"`
	// Patterns are the Go package patterns scanned for placeholder usage.
	Patterns []string `mapstructure:"patterns"`

	// File is the settings file that was read, if any.
	File string `mapstructure:"-"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Settings {
	return Settings{
		Config:   DefaultConfigFile,
		LogLevel: "info",
		Patterns: []string{"./..."},
	}
}

// Load merges defaults, the settings file, the environment and flags.
// An explicit settingsFile must exist; otherwise .commentvars.yaml in the
// working directory is read when present. flags may be nil.
func Load(settingsFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault(KeyConfig, defaults.Config)
	v.SetDefault(KeyVariant, defaults.Variant)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyPatterns, defaults.Patterns)

	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
	} else {
		v.SetConfigName(SettingsName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || settingsFile != "" {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{KeyConfig, KeyVariant, KeyLogLevel, KeyPatterns} {
			flag := flags.Lookup(key)
			if flag == nil {
				continue
			}

			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", key, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	s.File = v.ConfigFileUsed()

	if _, err := s.Level(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Level parses LogLevel.
func (s *Settings) Level() (log.Level, error) {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}

	return level, nil
}
