package routeros

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

const (
	DefaultAddress        = "192.168.88.1:8728"
	DefaultTimeout        = 10 * time.Second
	DefaultConnectTimeout = 5 * time.Second
)

// Config controls a Client instance.
type Config struct {
	// Address is the router's API endpoint as host:port.
	Address string
	// Timeout bounds how long a submitted command waits for its reply
	// terminator before failing with ErrTimeout.
	Timeout time.Duration
	// ConnectTimeout bounds the initial TCP dial.
	ConnectTimeout time.Duration
	// MaxPending caps queued plus in-flight commands; submits past the
	// cap fail with ErrQueueFull. Zero means unbounded.
	MaxPending int
	// Logger receives client diagnostics. Nil logs nothing.
	Logger *zerolog.Logger
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = DefaultAddress
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	return c
}

func (c Config) validate() error {
	host, _, err := net.SplitHostPort(c.Address)
	if err != nil {
		return fmt.Errorf("config invalid address %q: %w", c.Address, err)
	}
	if strings.TrimSpace(host) == "" {
		return fmt.Errorf("config address %q missing host", c.Address)
	}
	if c.MaxPending < 0 {
		return fmt.Errorf("config max_pending must not be negative: %d", c.MaxPending)
	}
	return nil
}

// fileConfig is the on-disk shape. Timeouts are carried in milliseconds.
type fileConfig struct {
	Address          string `toml:"address"`
	TimeoutMS        int64  `toml:"timeout_ms"`
	ConnectTimeoutMS int64  `toml:"connect_timeout_ms"`
	MaxPending       int    `toml:"max_pending"`
}

// LoadConfig reads a TOML config file, fills defaults, and validates.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	cfg := Config{
		Address:        fc.Address,
		Timeout:        time.Duration(fc.TimeoutMS) * time.Millisecond,
		ConnectTimeout: time.Duration(fc.ConnectTimeoutMS) * time.Millisecond,
		MaxPending:     fc.MaxPending,
	}.withDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
