package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Env maps environment variable names for token and password settings.
type Env struct {
	Secret            string
	Issuer            string
	AccessTTL         string
	RefreshTTL        string
	MinPasswordLength string
	BcryptCost        string
	CookieName        string
}

// Config holds token signing and password policy settings.
type Config struct {
	Secret            string `toml:"secret"`
	Issuer            string `toml:"issuer"`
	AccessTTL         string `toml:"access_ttl"`
	RefreshTTL        string `toml:"refresh_ttl"`
	MinPasswordLength int    `toml:"min_password_length"`
	BcryptCost        int    `toml:"bcrypt_cost"`
	CookieName        string `toml:"cookie_name"`
}

// AccessTTLDuration parses and returns the access token lifetime.
func (c *Config) AccessTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.AccessTTL)
	return d
}

// RefreshTTLDuration parses and returns the refresh token lifetime.
func (c *Config) RefreshTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.RefreshTTL)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.AccessTTL != "" {
		c.AccessTTL = overlay.AccessTTL
	}
	if overlay.RefreshTTL != "" {
		c.RefreshTTL = overlay.RefreshTTL
	}
	if overlay.MinPasswordLength != 0 {
		c.MinPasswordLength = overlay.MinPasswordLength
	}
	if overlay.BcryptCost != 0 {
		c.BcryptCost = overlay.BcryptCost
	}
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
}

func (c *Config) loadDefaults() {
	if c.Issuer == "" {
		c.Issuer = "facility-management"
	}
	if c.AccessTTL == "" {
		c.AccessTTL = "15m"
	}
	if c.RefreshTTL == "" {
		c.RefreshTTL = "168h"
	}
	if c.MinPasswordLength <= 0 {
		c.MinPasswordLength = 8
	}
	if c.BcryptCost <= 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
	if c.CookieName == "" {
		c.CookieName = "access_token"
	}
}

func (c *Config) loadEnv(env *Env) {
	lookup := func(name string) string {
		if name == "" {
			return ""
		}
		return os.Getenv(name)
	}

	if v := lookup(env.Secret); v != "" {
		c.Secret = v
	}
	if v := lookup(env.Issuer); v != "" {
		c.Issuer = v
	}
	if v := lookup(env.AccessTTL); v != "" {
		c.AccessTTL = v
	}
	if v := lookup(env.RefreshTTL); v != "" {
		c.RefreshTTL = v
	}
	if v := lookup(env.MinPasswordLength); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MinPasswordLength = n
		}
	}
	if v := lookup(env.BcryptCost); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BcryptCost = n
		}
	}
	if v := lookup(env.CookieName); v != "" {
		c.CookieName = v
	}
}

func (c *Config) validate() error {
	if len(c.Secret) < 32 {
		return fmt.Errorf("secret must be at least 32 bytes")
	}
	access, err := time.ParseDuration(c.AccessTTL)
	if err != nil {
		return fmt.Errorf("invalid access_ttl: %w", err)
	}
	refresh, err := time.ParseDuration(c.RefreshTTL)
	if err != nil {
		return fmt.Errorf("invalid refresh_ttl: %w", err)
	}
	if access <= 0 || refresh <= access {
		return fmt.Errorf("refresh_ttl must exceed a positive access_ttl")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}
