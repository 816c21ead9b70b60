// Package config loads henchman settings from henchman.toml and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// FileName is the config file looked up in the working directory.
const FileName = "henchman.toml"

// Defaults.
const (
	DefaultEngine      = "docker"
	DefaultLogLevel    = "warn"
	DefaultLockTimeout = 5 * time.Second
)

// Config holds henchman settings.
type Config struct {
	// Engine is the container engine binary (docker, podman, ...).
	Engine string `toml:"engine"`

	// Project overrides the working-directory-derived project name.
	Project string `toml:"project"`

	// LogLevel is a logrus level name.
	LogLevel string `toml:"log_level"`

	Lock LockConfig `toml:"lock"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// LockConfig configures the per-project operation lock.
type LockConfig struct {
	Timeout Duration `toml:"timeout"`
}

// Duration is a time.Duration decoded from strings like "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine:   DefaultEngine,
		LogLevel: DefaultLogLevel,
		Lock:     LockConfig{Timeout: Duration{DefaultLockTimeout}},
	}
}

// Load reads configuration with precedence defaults < file < environment.
//
// The file is the explicit path if given, else $HENCHMAN_CONFIG, else
// henchman.toml in dir. An explicit or env-named file must exist; the
// working-directory file is optional.
func Load(explicit, dir string) (*Config, error) {
	cfg := Default()

	path, required := explicit, true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path, required = filepath.Join(dir, FileName), false
	}

	if err := cfg.decodeFile(path, required); err != nil {
		return nil, err
	}

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if _, err := toml.Decode(string(data), c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.Path = path
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Engine) == "" {
		return fmt.Errorf("engine must not be empty")
	}
	if strings.ContainsAny(c.Engine, " \t") {
		return fmt.Errorf("engine %q must be a single executable name or path", c.Engine)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if c.Lock.Timeout.Duration < 0 {
		return fmt.Errorf("lock.timeout must not be negative")
	}
	return nil
}
