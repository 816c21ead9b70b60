package config

import (
	"sort"
	"strings"
)

// Environment variables read by henchman.
const (
	EnvConfig   = "HENCHMAN_CONFIG"
	EnvEngine   = "HENCHMAN_ENGINE"
	EnvProject  = "HENCHMAN_PROJECT"
	EnvLogLevel = "HENCHMAN_LOG_LEVEL"
	EnvDebug    = "HENCHMAN_DEBUG"
)

// ApplyEnv overlays environment variables onto the config.
// HENCHMAN_DEBUG=1 forces the debug level regardless of HENCHMAN_LOG_LEVEL.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvEngine)); v != "" {
		c.Engine = v
	}
	if v := strings.TrimSpace(getenv(EnvProject)); v != "" {
		c.Project = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if getenv(EnvDebug) == "1" {
		c.LogLevel = "debug"
	}
}

// Settings returns the effective settings as sorted key/value pairs for display.
func (c *Config) Settings() [][2]string {
	m := map[string]string{
		"engine":       c.Engine,
		"project":      c.Project,
		"log_level":    c.LogLevel,
		"lock.timeout": c.Lock.Timeout.String(),
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, m[k]})
	}
	return out
}
