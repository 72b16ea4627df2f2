package config

import "os"

const EnvAdminTitle = "ADMIN_TITLE"

// AdminConfig holds settings for the administrative handler group.
type AdminConfig struct {
	Title string `toml:"title"`
}

func (c *AdminConfig) Finalize() error {
	if c.Title == "" {
		c.Title = "Facility Administration"
	}
	if v := os.Getenv(EnvAdminTitle); v != "" {
		c.Title = v
	}
	return nil
}

func (c *AdminConfig) Merge(overlay *AdminConfig) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
}
