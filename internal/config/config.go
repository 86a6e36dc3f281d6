package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/nward/backtalk/internal/interceptor"
)

// Config holds application configuration.
type Config struct {
	Database    DatabaseConfig
	Interceptor InterceptorConfig
	Log         LogConfig
	UI          UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// InterceptorConfig holds message interception settings.
type InterceptorConfig struct {
	Intercept       bool
	ErrorOnly       bool     `mapstructure:"error_only"`
	ErrorText       string   `mapstructure:"error_text"`
	DialogTitle     string   `mapstructure:"dialog_title"`
	ExcludedSources []string `mapstructure:"excluded_sources"`
}

// LogConfig holds file logging settings. An empty path disables logging.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Accent string
}

// Load reads configuration from file and env. Env var overrides use prefix BACKTALK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "backtalk", "backtalk.db"))
	v.SetDefault("interceptor.intercept", true)
	v.SetDefault("interceptor.error_only", false)
	v.SetDefault("interceptor.error_text", interceptor.DefaultErrorText)
	v.SetDefault("interceptor.dialog_title", interceptor.DefaultDialogTitle)
	v.SetDefault("interceptor.excluded_sources", []string{})
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.accent", "#89b4fa")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("BACKTALK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "backtalk"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BACKTALK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Runtime toggles (ctrl+t, ctrl+e) are session-only and are not
// persisted; edit the file or call Save to change startup behavior.
func Save(cfg Config) error {
	path := os.Getenv("BACKTALK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "backtalk", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("interceptor.intercept", cfg.Interceptor.Intercept)
	v.Set("interceptor.error_only", cfg.Interceptor.ErrorOnly)
	v.Set("interceptor.error_text", cfg.Interceptor.ErrorText)
	v.Set("interceptor.dialog_title", cfg.Interceptor.DialogTitle)
	v.Set("interceptor.excluded_sources", cfg.Interceptor.ExcludedSources)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.accent", cfg.UI.Accent)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// InterceptorSettings maps the config section onto interceptor settings.
// Empty strings stay empty here; the interceptor applies its own defaults.
func (c Config) InterceptorSettings() interceptor.Settings {
	return interceptor.Settings{
		Intercept:       c.Interceptor.Intercept,
		ErrorOnly:       c.Interceptor.ErrorOnly,
		ErrorText:       c.Interceptor.ErrorText,
		DialogTitle:     c.Interceptor.DialogTitle,
		ExcludedSources: c.Interceptor.ExcludedSources,
	}
}
