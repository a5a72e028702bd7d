// Package config loads the picker configuration using Viper, merging defaults, an
// optional TOML file, TYPEAHEAD_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/gorbach/typeahead/internal/datasource"
	"github.com/gorbach/typeahead/internal/logger"
)

// EnvPrefix is the prefix of environment variables that override settings,
// e.g. TYPEAHEAD_SIMULATION_ERROR_RATE.
const EnvPrefix = "TYPEAHEAD"

// Duration is a time.Duration written as text ("150ms") in config files.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

type Config struct {
	Source     SourceConfig     `mapstructure:"source" toml:"source"`
	Simulation SimulationConfig `mapstructure:"simulation" toml:"simulation"`
	UI         UIConfig         `mapstructure:"ui" toml:"ui"`
	Log        LogConfig        `mapstructure:"log" toml:"log"`
}

type SourceConfig struct {
	URL     string   `mapstructure:"url" toml:"url"`
	Field   string   `mapstructure:"field" toml:"field"`
	Timeout Duration `mapstructure:"timeout" toml:"timeout"`
	// Offline uses the bundled country list instead of URL.
	Offline bool `mapstructure:"offline" toml:"offline"`
}

type SimulationConfig struct {
	Enabled      bool     `mapstructure:"enabled" toml:"enabled"`
	Delay        Duration `mapstructure:"delay" toml:"delay"`
	ErrorRate    float64  `mapstructure:"error_rate" toml:"error_rate"`
	Seed         uint64   `mapstructure:"seed" toml:"seed,omitempty"`
	ErrorMessage string   `mapstructure:"error_message" toml:"error_message"`
}

type UIConfig struct {
	Debounce    Duration `mapstructure:"debounce" toml:"debounce"`
	Placeholder string   `mapstructure:"placeholder" toml:"placeholder"`
	MaxWidth    int      `mapstructure:"max_width" toml:"max_width"`
}

type LogConfig struct {
	// File receives the log; empty disables logging since the terminal belongs to the UI.
	File  string `mapstructure:"file" toml:"file"`
	Level string `mapstructure:"level" toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source: SourceConfig{
			URL:     datasource.DefaultURL,
			Field:   datasource.DefaultField,
			Timeout: Duration(10 * time.Second),
		},
		Simulation: SimulationConfig{
			Delay:        Duration(time.Second),
			ErrorRate:    0.2,
			ErrorMessage: "simulated fetch failure",
		},
		UI: UIConfig{
			Debounce:    Duration(150 * time.Millisecond),
			Placeholder: "Search for country",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers Default() with v so every key is known to Unmarshal and to
// AutomaticEnv.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("source.url", d.Source.URL)
	v.SetDefault("source.field", d.Source.Field)
	v.SetDefault("source.timeout", d.Source.Timeout.String())
	v.SetDefault("source.offline", d.Source.Offline)
	v.SetDefault("simulation.enabled", d.Simulation.Enabled)
	v.SetDefault("simulation.delay", d.Simulation.Delay.String())
	v.SetDefault("simulation.error_rate", d.Simulation.ErrorRate)
	v.SetDefault("simulation.seed", d.Simulation.Seed)
	v.SetDefault("simulation.error_message", d.Simulation.ErrorMessage)
	v.SetDefault("ui.debounce", d.UI.Debounce.String())
	v.SetDefault("ui.placeholder", d.UI.Placeholder)
	v.SetDefault("ui.max_width", d.UI.MaxWidth)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// NewViper returns a Viper instance with defaults and environment binding set up.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// ReadFile reads path into v. A missing file at the default location is not an
// error; an explicitly requested file must exist.
func ReadFile(v *viper.Viper, path string, explicit bool) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error

	if !c.Source.Offline && strings.TrimSpace(c.Source.URL) == "" {
		errs = append(errs, errors.New("source.url must be set unless source.offline is true"))
	}
	if c.Source.Timeout < 0 {
		errs = append(errs, errors.New("source.timeout must not be negative"))
	}
	if c.Simulation.Delay < 0 {
		errs = append(errs, errors.New("simulation.delay must not be negative"))
	}
	if c.Simulation.ErrorRate < 0 || c.Simulation.ErrorRate > 1 {
		errs = append(errs, fmt.Errorf("simulation.error_rate must be within [0, 1], got %g", c.Simulation.ErrorRate))
	}
	if c.UI.Debounce < 0 {
		errs = append(errs, errors.New("ui.debounce must not be negative"))
	}
	if c.UI.MaxWidth < 0 {
		errs = append(errs, errors.New("ui.max_width must not be negative"))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// DefaultPath returns $XDG_CONFIG_HOME/typeahead/config.toml, or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "typeahead", "config.toml"), nil
}

// Save writes cfg as TOML to path, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Marshal renders cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
