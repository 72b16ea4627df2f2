package metrics

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// Env maps environment variable names for metrics configuration.
type Env struct {
	Enabled   string
	Namespace string
}

// Config controls Prometheus instrumentation.
type Config struct {
	Enabled   *bool  `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsEnabled reports whether instrumentation is on. It defaults to true.
func (c *Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	if c.Namespace == "" {
		c.Namespace = "facilities"
	}
	if env != nil {
		if v := os.Getenv(env.Enabled); env.Enabled != "" && v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Enabled = &b
			}
		}
		if v := os.Getenv(env.Namespace); env.Namespace != "" && v != "" {
			c.Namespace = v
		}
	}
	if !namespacePattern.MatchString(c.Namespace) {
		return fmt.Errorf("invalid namespace %q", c.Namespace)
	}
	return nil
}

// Merge applies set values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.Namespace != "" {
		c.Namespace = overlay.Namespace
	}
}
