package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/jask/jaskcalc/internal/theme"
)

// Config holds application configuration.
type Config struct {
	UI   UIConfig   `mapstructure:"ui"`
	Log  LogConfig  `mapstructure:"log"`
	Keys KeysConfig `mapstructure:"keys"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme    int  `mapstructure:"theme"`
	MaxWidth int  `mapstructure:"max_width"`
	Mouse    bool `mapstructure:"mouse"`
}

// LogConfig holds log file settings. An empty Path disables logging.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// KeysConfig points at the optional keymap override file.
type KeysConfig struct {
	Path string `mapstructure:"path"`
}

// MinWidth is the narrowest panel the keypad can be drawn in.
const MinWidth = 28

// Load reads configuration from file and env. Env var overrides use prefix JASKCALC_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = filepath.Join(home, ".cache")
	}

	// default values
	v.SetDefault("ui.theme", 1)
	v.SetDefault("ui.max_width", 56)
	v.SetDefault("ui.mouse", true)
	v.SetDefault("log.path", filepath.Join(cacheDir, "jaskcalc", "jaskcalc.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("keys.path", filepath.Join(home, ".config", "jaskcalc", "keys.toml"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("JASKCALC_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "jaskcalc"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JASKCALC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that cannot be clamped silently.
func (c Config) Validate() error {
	var errs []error
	if _, err := theme.ParseVariant(c.UI.Theme); err != nil {
		errs = append(errs, fmt.Errorf("ui.theme: %w", err))
	}
	if c.UI.MaxWidth < MinWidth {
		errs = append(errs, fmt.Errorf("ui.max_width: %d is below the minimum of %d", c.UI.MaxWidth, MinWidth))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// Theme returns the validated starting theme.
func (c Config) Theme() theme.Variant {
	v, err := theme.ParseVariant(c.UI.Theme)
	if err != nil {
		return theme.Variant1
	}
	return v
}
