// Package config loads the service configuration from an optional YAML file
// overridden by environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config captures the tunables of the booking service. Values resolve in
// three layers: built-in defaults, then the YAML file, then environment
// variables.
type Config struct {
	HTTPPort        int    `env:"BOOKING_HTTP_PORT"`
	UpstreamBaseURL string `env:"BOOKING_UPSTREAM_BASE_URL"`
	// UpstreamTimeout bounds each backend call. Zero disables the client
	// timeout entirely, leaving cancellation to the request context.
	UpstreamTimeout time.Duration `env:"BOOKING_UPSTREAM_TIMEOUT"`
	CacheTTL        time.Duration `env:"BOOKING_CACHE_TTL"`
	RefreshInterval time.Duration `env:"BOOKING_REFRESH_INTERVAL"`
	FilterBatchSize int           `env:"BOOKING_FILTER_BATCH_SIZE"`
	PrefetchEnabled bool          `env:"BOOKING_PREFETCH_ENABLED"`
	Timezone        string        `env:"BOOKING_TIMEZONE"`
}

// fileConfig mirrors Config for the YAML layer. Durations arrive as strings
// ("10s", "2m") and pointers distinguish "absent" from zero values.
type fileConfig struct {
	HTTPPort        *int    `yaml:"http_port"`
	UpstreamBaseURL *string `yaml:"upstream_base_url"`
	UpstreamTimeout *string `yaml:"upstream_timeout"`
	CacheTTL        *string `yaml:"cache_ttl"`
	RefreshInterval *string `yaml:"refresh_interval"`
	FilterBatchSize *int    `yaml:"filter_batch_size"`
	PrefetchEnabled *bool   `yaml:"prefetch_enabled"`
	Timezone        *string `yaml:"timezone"`
}

func defaults() Config {
	return Config{
		HTTPPort:        8080,
		CacheTTL:        2 * time.Minute,
		RefreshInterval: 10 * time.Second,
		FilterBatchSize: 1000,
		PrefetchEnabled: true,
		Timezone:        "Local",
	}
}

// Load resolves the configuration. path names the optional YAML file; an
// empty path or a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file.
		case err != nil:
			return Config{}, fmt.Errorf("no se pudo leer el fichero de configuración %s: %w", path, err)
		default:
			if err := applyFile(&cfg, data); err != nil {
				return Config{}, fmt.Errorf("el fichero de configuración %s no es válido: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("las variables de entorno no son válidas: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, data []byte) error {
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}

	if file.HTTPPort != nil {
		cfg.HTTPPort = *file.HTTPPort
	}
	if file.UpstreamBaseURL != nil {
		cfg.UpstreamBaseURL = *file.UpstreamBaseURL
	}
	if file.FilterBatchSize != nil {
		cfg.FilterBatchSize = *file.FilterBatchSize
	}
	if file.PrefetchEnabled != nil {
		cfg.PrefetchEnabled = *file.PrefetchEnabled
	}
	if file.Timezone != nil {
		cfg.Timezone = *file.Timezone
	}

	for _, field := range []struct {
		name  string
		raw   *string
		value *time.Duration
	}{
		{name: "upstream_timeout", raw: file.UpstreamTimeout, value: &cfg.UpstreamTimeout},
		{name: "cache_ttl", raw: file.CacheTTL, value: &cfg.CacheTTL},
		{name: "refresh_interval", raw: file.RefreshInterval, value: &cfg.RefreshInterval},
	} {
		if field.raw == nil {
			continue
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(*field.raw))
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = parsed
	}
	return nil
}

func (c Config) validate() error {
	invalid := make([]string, 0, 2)

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		invalid = append(invalid, "http_port")
	}
	if strings.TrimSpace(c.UpstreamBaseURL) == "" {
		return fmt.Errorf("falta un valor de configuración obligatorio: upstream_base_url")
	}
	if c.UpstreamTimeout < 0 {
		invalid = append(invalid, "upstream_timeout")
	}
	if c.CacheTTL <= 0 {
		invalid = append(invalid, "cache_ttl")
	}
	if c.RefreshInterval <= 0 {
		invalid = append(invalid, "refresh_interval")
	}
	if c.FilterBatchSize <= 0 {
		invalid = append(invalid, "filter_batch_size")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		invalid = append(invalid, "timezone")
	}

	if len(invalid) > 0 {
		return fmt.Errorf("valores de configuración no válidos: %s", strings.Join(invalid, ", "))
	}
	return nil
}

// Location resolves the configured time zone. Call only after Load has
// validated the configuration.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
