// Package config loads termwidget settings from defaults, an optional file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/lixenwraith/termwidget/palette"
	"github.com/lixenwraith/termwidget/terminal"
	"github.com/lixenwraith/termwidget/terminal/tui"
)

// EnvPrefix prefixes environment overrides, e.g. TERMWIDGET_LOG_LEVEL
const EnvPrefix = "TERMWIDGET"

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("config: invalid")

// Config holds all runtime settings
type Config struct {
	// Tick bounds how long one loop iteration waits for a key
	Tick time.Duration `mapstructure:"tick"`

	QuitKey string `mapstructure:"quit_key"`
	Bell    bool   `mapstructure:"bell"`
	Border  string `mapstructure:"border"`

	Log    LogConfig    `mapstructure:"log"`
	Keys   KeysConfig   `mapstructure:"keys"`
	Colors ColorsConfig `mapstructure:"colors"`
}

// LogConfig selects the log file and verbosity; an empty file disables logging
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// KeysConfig holds extra bindings translated to the arrow keys
type KeysConfig struct {
	Up    string `mapstructure:"up"`
	Down  string `mapstructure:"down"`
	Left  string `mapstructure:"left"`
	Right string `mapstructure:"right"`
}

// ColorsConfig names the demo colors, as tcell color names or #rrggbb
type ColorsConfig struct {
	Frame      string `mapstructure:"frame"`
	Accent     string `mapstructure:"accent"`
	Dim        string `mapstructure:"dim"`
	Background string `mapstructure:"background"`
}

// Theme is ColorsConfig resolved to terminal colors
type Theme struct {
	Frame      tcell.Color
	Accent     tcell.Color
	Dim        tcell.Color
	Background tcell.Color
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("tick", "50ms")
	v.SetDefault("quit_key", "q")
	v.SetDefault("bell", false)
	v.SetDefault("border", "single")

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetDefault("keys.up", "k")
	v.SetDefault("keys.down", "j")
	v.SetDefault("keys.left", "h")
	v.SetDefault("keys.right", "l")

	v.SetDefault("colors.frame", "steelblue")
	v.SetDefault("colors.accent", "aqua")
	v.SetDefault("colors.dim", "gray")
	v.SetDefault("colors.background", "default")
}

// Default returns the configuration with no file and no environment applied
func Default() *Config {
	cfg, err := Load(viper.New(), "")
	if err != nil {
		// Defaults are static and always decode
		panic(err)
	}
	return cfg
}

// Load reads settings into a Config
// Precedence (highest to lowest): values already set or bound on v (flags),
// TERMWIDGET_* environment, the file at path, defaults. A nil v gets a fresh viper.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Tick <= 0 {
		result = multierror.Append(result, fmt.Errorf("tick %s must be positive: %w", c.Tick, ErrInvalidConfig))
	}
	if _, err := c.LineType(); err != nil {
		result = multierror.Append(result, err)
	}
	quit, quitErr := c.Quit()
	if quitErr != nil {
		result = multierror.Append(result, quitErr)
	}
	aliases, aliasErr := c.Aliases()
	if aliasErr != nil {
		result = multierror.Append(result, aliasErr)
	}
	// Quit is checked before aliases, so a shared binding would shadow a direction
	if quitErr == nil && aliasErr == nil {
		if k, ok := aliases[quit]; ok {
			result = multierror.Append(result, fmt.Errorf("quit_key %q collides with the %s alias: %w", c.QuitKey, terminal.KeyName(k), ErrInvalidConfig))
		}
	}
	if _, err := c.Theme(); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := c.LogLevel(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// LineType resolves the border style
func (c *Config) LineType() (tui.LineType, error) {
	lt, err := tui.ParseLineType(c.Border)
	if err != nil {
		return 0, fmt.Errorf("border: %v: %w", err, ErrInvalidConfig)
	}
	return lt, nil
}

// Quit resolves the quit binding
func (c *Config) Quit() (terminal.Binding, error) {
	b, err := terminal.ParseBinding(c.QuitKey)
	if err != nil {
		return terminal.Binding{}, fmt.Errorf("quit_key: %v: %w", err, ErrInvalidConfig)
	}
	return b, nil
}

// Aliases maps each configured extra binding to the arrow key it stands for
// Empty entries are skipped.
func (c *Config) Aliases() (map[terminal.Binding]terminal.Key, error) {
	entries := []struct {
		name string
		spec string
		key  terminal.Key
	}{
		{"keys.up", c.Keys.Up, terminal.KeyUp},
		{"keys.down", c.Keys.Down, terminal.KeyDown},
		{"keys.left", c.Keys.Left, terminal.KeyLeft},
		{"keys.right", c.Keys.Right, terminal.KeyRight},
	}

	out := make(map[terminal.Binding]terminal.Key, len(entries))
	for _, e := range entries {
		if e.spec == "" {
			continue
		}
		b, err := terminal.ParseBinding(e.spec)
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", e.name, err, ErrInvalidConfig)
		}
		if prev, dup := out[b]; dup {
			return nil, fmt.Errorf("%s: %q already bound to %s: %w", e.name, e.spec, terminal.KeyName(prev), ErrInvalidConfig)
		}
		out[b] = e.key
	}
	return out, nil
}

// Theme resolves the configured color names
func (c *Config) Theme() (Theme, error) {
	var t Theme
	entries := []struct {
		name string
		spec string
		dst  *tcell.Color
	}{
		{"colors.frame", c.Colors.Frame, &t.Frame},
		{"colors.accent", c.Colors.Accent, &t.Accent},
		{"colors.dim", c.Colors.Dim, &t.Dim},
		{"colors.background", c.Colors.Background, &t.Background},
	}

	for _, e := range entries {
		col, err := palette.ParseColor(e.spec)
		if err != nil {
			return Theme{}, fmt.Errorf("%s: %v: %w", e.name, err, ErrInvalidConfig)
		}
		*e.dst = col
	}
	return t, nil
}

// LogLevel resolves the logrus level
func (c *Config) LogLevel() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("log.level: %v: %w", err, ErrInvalidConfig)
	}
	return lvl, nil
}
