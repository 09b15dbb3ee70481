// Package database opens and owns the PostgreSQL connection pool.
package database

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"slices"
	"strconv"
	"time"
)

var sslModes = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

// Config locates the registration database and sizes its pool.
type Config struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Name     string `toml:"name"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	// SSLMode is a libpq sslmode. Local development runs without TLS.
	SSLMode string `toml:"sslmode"`

	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime string `toml:"conn_max_lifetime"`
	// ConnTimeout bounds the startup ping.
	ConnTimeout string `toml:"conn_timeout"`

	connMaxLifetime time.Duration
	connTimeout     time.Duration
}

// Env names the environment variables that override Config. Empty names are skipped.
type Env struct {
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    string
	MaxIdleConns    string
	ConnMaxLifetime string
	ConnTimeout     string
}

// ConnMaxLifetimeDuration is valid after Finalize.
func (c *Config) ConnMaxLifetimeDuration() time.Duration {
	return c.connMaxLifetime
}

// ConnTimeoutDuration is valid after Finalize.
func (c *Config) ConnTimeoutDuration() time.Duration {
	return c.connTimeout
}

// Dsn is the keyword/value form handed to the pgx stdlib driver.
func (c *Config) Dsn() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Name, c.User, c.Password, c.sslMode(),
	)
}

// URL is the same target as Dsn in URL form. Migrations use the "pgx5" scheme.
func (c *Config) URL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.sslMode()}}.Encode(),
	}
	return u.String()
}

func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	mergeString(&c.Host, overlay.Host)
	mergeString(&c.Name, overlay.Name)
	mergeString(&c.User, overlay.User)
	mergeString(&c.Password, overlay.Password)
	mergeString(&c.SSLMode, overlay.SSLMode)
	mergeString(&c.ConnMaxLifetime, overlay.ConnMaxLifetime)
	mergeString(&c.ConnTimeout, overlay.ConnTimeout)
	mergeInt(&c.Port, overlay.Port)
	mergeInt(&c.MaxOpenConns, overlay.MaxOpenConns)
	mergeInt(&c.MaxIdleConns, overlay.MaxIdleConns)
}

func (c *Config) loadDefaults() {
	c.Host = orDefault(c.Host, "localhost")
	c.Port = orDefaultInt(c.Port, 5432)
	c.SSLMode = orDefault(c.SSLMode, "disable")
	c.MaxOpenConns = orDefaultInt(c.MaxOpenConns, 10)
	c.MaxIdleConns = orDefaultInt(c.MaxIdleConns, 5)
	c.ConnMaxLifetime = orDefault(c.ConnMaxLifetime, "30m")
	c.ConnTimeout = orDefault(c.ConnTimeout, "5s")
}

func (c *Config) loadEnv(env *Env) {
	mergeString(&c.Host, lookup(env.Host))
	mergeString(&c.Name, lookup(env.Name))
	mergeString(&c.User, lookup(env.User))
	mergeString(&c.Password, lookup(env.Password))
	mergeString(&c.SSLMode, lookup(env.SSLMode))
	mergeString(&c.ConnMaxLifetime, lookup(env.ConnMaxLifetime))
	mergeString(&c.ConnTimeout, lookup(env.ConnTimeout))
	mergeInt(&c.Port, lookupInt(env.Port))
	mergeInt(&c.MaxOpenConns, lookupInt(env.MaxOpenConns))
	mergeInt(&c.MaxIdleConns, lookupInt(env.MaxIdleConns))
}

func (c *Config) validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("name required")
	case c.User == "":
		return fmt.Errorf("user required")
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("port %d out of range", c.Port)
	case !slices.Contains(sslModes, c.SSLMode):
		return fmt.Errorf("unknown sslmode %q", c.SSLMode)
	case c.MaxIdleConns > c.MaxOpenConns:
		return fmt.Errorf("max_idle_conns (%d) exceeds max_open_conns (%d)", c.MaxIdleConns, c.MaxOpenConns)
	}

	lifetime, err := time.ParseDuration(c.ConnMaxLifetime)
	if err != nil {
		return fmt.Errorf("invalid conn_max_lifetime: %w", err)
	}
	timeout, err := time.ParseDuration(c.ConnTimeout)
	if err != nil {
		return fmt.Errorf("invalid conn_timeout: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("conn_timeout must be positive")
	}

	c.connMaxLifetime = lifetime
	c.connTimeout = timeout
	return nil
}

func (c *Config) sslMode() string {
	if c.SSLMode == "" {
		return "disable"
	}
	return c.SSLMode
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}

// lookupInt ignores unset and unparsable values.
func lookupInt(name string) int {
	n, err := strconv.Atoi(lookup(name))
	if err != nil {
		return 0
	}
	return n
}
