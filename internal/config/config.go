// Package config provides Viper-based configuration loading for the Crusade
// game server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the bind address for the HTTP listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the HTTP listener.
	Port int `mapstructure:"port"`
	// ReadTimeout is the per-request read timeout.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the per-request write timeout.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// ShutdownTimeout bounds graceful shutdown on stop.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// NarratorConfig holds battle-cry generation settings.
type NarratorConfig struct {
	// Enabled turns shout generation on or off entirely.
	Enabled bool `mapstructure:"enabled"`
	// APIKey is the Anthropic API credential; empty means fallback shouts only.
	APIKey string `mapstructure:"api_key"`
	// Model is the Anthropic model identifier; empty selects the default.
	Model string `mapstructure:"model"`
	// Timeout bounds each narration call.
	Timeout time.Duration `mapstructure:"timeout"`
	// Fallbacks substitutes canned per-archetype shouts when generation
	// fails; when false a failed generation omits the shout instead.
	Fallbacks bool `mapstructure:"fallbacks"`
}

// GameConfig holds match defaults and bounds.
type GameConfig struct {
	// DefaultPlayerName is used when a start request carries no name.
	DefaultPlayerName string `mapstructure:"default_player_name"`
	// DefaultEnemyCount is used when a start request carries no count.
	DefaultEnemyCount int `mapstructure:"default_enemy_count"`
	// MaxEnemyCount is the largest roster a start request may ask for.
	MaxEnemyCount int `mapstructure:"max_enemy_count"`
}

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Narrator NarratorConfig `mapstructure:"narrator"`
	Game     GameConfig     `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateServer(c.Server); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateNarrator(c.Narrator); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateServer(s ServerConfig) error {
	var errs []string
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", s.Port))
	}
	if s.ReadTimeout < 0 {
		errs = append(errs, "server.read_timeout must not be negative")
	}
	if s.WriteTimeout < 0 {
		errs = append(errs, "server.write_timeout must not be negative")
	}
	if s.ShutdownTimeout < 0 {
		errs = append(errs, "server.shutdown_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateNarrator(n NarratorConfig) error {
	if n.Enabled && n.Timeout <= 0 {
		return fmt.Errorf("narrator.timeout must be positive when narrator is enabled, got %s", n.Timeout)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.DefaultEnemyCount < 1 {
		errs = append(errs, fmt.Sprintf("game.default_enemy_count must be >= 1, got %d", g.DefaultEnemyCount))
	}
	if g.MaxEnemyCount < 1 {
		errs = append(errs, fmt.Sprintf("game.max_enemy_count must be >= 1, got %d", g.MaxEnemyCount))
	}
	if g.MaxEnemyCount >= 1 && g.DefaultEnemyCount > g.MaxEnemyCount {
		errs = append(errs, "game.default_enemy_count must not exceed game.max_enemy_count")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with CRUSADE_ prefix
	v.SetEnvPrefix("CRUSADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("narrator.enabled", true)
	v.SetDefault("narrator.api_key", "")
	v.SetDefault("narrator.model", "")
	v.SetDefault("narrator.timeout", "30s")
	v.SetDefault("narrator.fallbacks", true)

	v.SetDefault("game.default_player_name", "Space Marine")
	v.SetDefault("game.default_enemy_count", 3)
	v.SetDefault("game.max_enemy_count", 10)
}
