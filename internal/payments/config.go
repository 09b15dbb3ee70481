package payments

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/docker/go-units"
)

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	MinReferenceLength string
	MaxReferenceLength string
	MaxProofSize       string
	ScreenshotPrefix   string
}

// Config bounds accepted references and proof files.
type Config struct {
	MinReferenceLength int `toml:"min_reference_length"`
	MaxReferenceLength int `toml:"max_reference_length"`
	// MaxProofSize is a binary size such as "5MiB".
	MaxProofSize     string `toml:"max_proof_size"`
	ScreenshotPrefix string `toml:"screenshot_prefix"`

	maxProofBytes int64
}

// MaxProofSizeBytes returns the parsed MaxProofSize. Valid after Finalize.
func (c *Config) MaxProofSizeBytes() int64 {
	return c.maxProofBytes
}

func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.MinReferenceLength != 0 {
		c.MinReferenceLength = overlay.MinReferenceLength
	}
	if overlay.MaxReferenceLength != 0 {
		c.MaxReferenceLength = overlay.MaxReferenceLength
	}
	if overlay.MaxProofSize != "" {
		c.MaxProofSize = overlay.MaxProofSize
	}
	if overlay.ScreenshotPrefix != "" {
		c.ScreenshotPrefix = overlay.ScreenshotPrefix
	}
}

func (c *Config) loadDefaults() {
	if c.MinReferenceLength == 0 {
		c.MinReferenceLength = 12
	}
	if c.MaxReferenceLength == 0 {
		c.MaxReferenceLength = 20
	}
	if c.MaxProofSize == "" {
		c.MaxProofSize = "5MiB"
	}
	if c.ScreenshotPrefix == "" {
		c.ScreenshotPrefix = "screenshots"
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if env.MinReferenceLength != "" {
		if v := os.Getenv(env.MinReferenceLength); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MinReferenceLength = n
			}
		}
	}
	if env.MaxReferenceLength != "" {
		if v := os.Getenv(env.MaxReferenceLength); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxReferenceLength = n
			}
		}
	}
	if env.MaxProofSize != "" {
		if v := os.Getenv(env.MaxProofSize); v != "" {
			c.MaxProofSize = v
		}
	}
	if env.ScreenshotPrefix != "" {
		if v := os.Getenv(env.ScreenshotPrefix); v != "" {
			c.ScreenshotPrefix = v
		}
	}
}

func (c *Config) validate() error {
	if c.MinReferenceLength < 1 {
		return fmt.Errorf("min_reference_length must be positive")
	}
	if c.MaxReferenceLength < c.MinReferenceLength {
		return fmt.Errorf("max_reference_length cannot be less than min_reference_length")
	}

	size, err := units.RAMInBytes(c.MaxProofSize)
	if err != nil {
		return fmt.Errorf("invalid max_proof_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_proof_size must be positive")
	}
	c.maxProofBytes = size

	c.ScreenshotPrefix = strings.Trim(c.ScreenshotPrefix, "/")
	if c.ScreenshotPrefix == "" || strings.Contains(c.ScreenshotPrefix, "..") {
		return fmt.Errorf("invalid screenshot_prefix")
	}
	return nil
}
