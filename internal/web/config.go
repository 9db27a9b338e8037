package web

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/hoaithanh/giaitoan/internal/export"
)

// Config holds the HTTP server settings, read from GIAITOAN_* variables.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	MaxUploadBytes  int64         `env:"MAX_UPLOAD_BYTES" envDefault:"20971520"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"180s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	Export          export.Config
}

// DefaultConfig returns the configuration with no environment applied.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		MaxUploadBytes:  20 << 20,
		RequestTimeout:  180 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		Export:          export.Config{Dir: "."},
	}
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "GIAITOAN_"}); err != nil {
		return Config{}, fmt.Errorf("web config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the limits are usable.
func (c Config) Validate() error {
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("web config: max upload bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("web config: request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
