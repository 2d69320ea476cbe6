// Package config loads multitimer configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/multitimer/multitimer-go/pkg/countdown"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// History drivers.
const (
	DriverNone     = ""
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config is the full configuration shared by the multitimer commands.
type Config struct {
	LogLevel   string        `yaml:"log_level"`
	TickPeriod time.Duration `yaml:"tick_period"`
	EventLog   string        `yaml:"event_log"`

	Labels    Labels    `yaml:"labels"`
	Web       Web       `yaml:"web"`
	History   History   `yaml:"history"`
	Cue       Cue       `yaml:"cue"`
	Discovery Discovery `yaml:"discovery"`
}

// Labels are the fixed texts shown on cards.
type Labels struct {
	TimeUp  string `yaml:"time_up"`
	Dismiss string `yaml:"dismiss"`
	Delete  string `yaml:"delete"`
}

// Web configures the browser front end.
type Web struct {
	Listen         string `yaml:"listen"`
	MaxConnections int    `yaml:"max_connections"`
	Auth           Auth   `yaml:"auth"`
}

// Auth enables HTTP basic auth when User is set.
type Auth struct {
	User         string `yaml:"user"`
	PasswordHash string `yaml:"password_hash"`
}

// Enabled reports whether basic auth is configured.
func (a Auth) Enabled() bool {
	return a.User != ""
}

// History configures the finished-timer store.
type History struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Cue configures the completion cue.
type Cue struct {
	Command []string `yaml:"command,omitempty"`
	Bell    bool     `yaml:"bell"`
	Workers int      `yaml:"workers"`
}

// Discovery configures mDNS advertisement of the web board.
type Discovery struct {
	Enabled   bool   `yaml:"enabled"`
	Instance  string `yaml:"instance"`
	Interface string `yaml:"interface"`
}

// Default returns the built-in configuration.
func Default() Config {
	labels := countdown.DefaultLabels()
	return Config{
		LogLevel:   "info",
		TickPeriod: countdown.DefaultTickPeriod,
		Labels: Labels{
			TimeUp:  labels.TimeUp,
			Dismiss: labels.Dismiss,
			Delete:  "Delete",
		},
		Web: Web{
			Listen:         ":8080",
			MaxConnections: 64,
		},
		Cue: Cue{
			Bell:    true,
			Workers: 2,
		},
		Discovery: Discovery{
			Instance: "multitimer",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field ranges and enumerations.
func (c Config) Validate() error {
	if c.TickPeriod <= 0 {
		return fmt.Errorf("%w: tick_period must be positive, got %v", ErrInvalidConfig, c.TickPeriod)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.History.Driver {
	case DriverNone, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: unknown history driver %q", ErrInvalidConfig, c.History.Driver)
	}
	if c.History.Driver != DriverNone && c.History.DSN == "" {
		return fmt.Errorf("%w: history driver %q needs a dsn", ErrInvalidConfig, c.History.Driver)
	}
	if c.Web.MaxConnections < 0 {
		return fmt.Errorf("%w: max_connections must not be negative", ErrInvalidConfig)
	}
	if c.Web.Auth.Enabled() && c.Web.Auth.PasswordHash == "" {
		return fmt.Errorf("%w: auth user %q has no password_hash", ErrInvalidConfig, c.Web.Auth.User)
	}
	if c.Cue.Workers < 1 {
		return fmt.Errorf("%w: cue workers must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// RegistryLabels converts the card labels for countdown.WithLabels.
func (c Config) RegistryLabels() countdown.Labels {
	return countdown.Labels{
		TimeUp:  c.Labels.TimeUp,
		Dismiss: c.Labels.Dismiss,
	}
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
