package storage

import (
	"fmt"
	"os"
	"strings"

	"github.com/docker/go-units"
)

// Config configures the filesystem object store.
type Config struct {
	// BasePath is the root directory objects are written under.
	BasePath string `toml:"base_path"`
	// MaxUploadSize bounds request bodies accepted by upload handlers, e.g. "10MiB".
	MaxUploadSize string `toml:"max_upload_size"`
	// PublicURL is the URL prefix that stored keys are served from.
	PublicURL string `toml:"public_url"`

	maxUploadBytes int64
}

// Env names the environment variables that override Config.
type Env struct {
	BasePath      string
	MaxUploadSize string
	PublicURL     string
}

// MaxUploadSizeBytes returns the parsed MaxUploadSize. Valid after Finalize.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadBytes
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.PublicURL != "" {
		c.PublicURL = overlay.PublicURL
	}
}

func (c *Config) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = ".data/objects"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MiB"
	}
	if c.PublicURL == "" {
		c.PublicURL = "/files"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BasePath != "" {
		if v := os.Getenv(env.BasePath); v != "" {
			c.BasePath = v
		}
	}
	if env.MaxUploadSize != "" {
		if v := os.Getenv(env.MaxUploadSize); v != "" {
			c.MaxUploadSize = v
		}
	}
	if env.PublicURL != "" {
		if v := os.Getenv(env.PublicURL); v != "" {
			c.PublicURL = v
		}
	}
}

func (c *Config) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}

	size, err := units.RAMInBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadBytes = size

	c.PublicURL = strings.TrimSuffix(c.PublicURL, "/")
	if c.PublicURL == "" {
		return fmt.Errorf("public_url required")
	}
	return nil
}
