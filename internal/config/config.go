package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the client and CLI. It is read once at
// startup and never mutated afterwards.
type Config struct {
	// Postmaster API
	APIKey     string        `envconfig:"POSTMASTER_API_KEY"`
	BaseURL    string        `envconfig:"POSTMASTER_BASE_URL" default:"https://api.postmaster.io"`
	APIVersion string        `envconfig:"POSTMASTER_API_VERSION"`
	Timeout    time.Duration `envconfig:"POSTMASTER_HTTP_TIMEOUT" default:"30s"`
	UseMock    bool          `envconfig:"POSTMASTER_USE_MOCK" default:"false"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"postmaster-go"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("postmaster.mock", c.UseMock),
	}
}
