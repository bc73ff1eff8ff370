package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// GoGoVan Plus account. Credentials ride in every request body; the
	// remote has no token mechanism. BaseURL switches between sandbox and
	// production deployments.
	GoGoVanEmail    string        `envconfig:"GOGOVAN_EMAIL"`
	GoGoVanPassword string        `envconfig:"GOGOVAN_PASSWORD"`
	GoGoVanBaseURL  string        `envconfig:"GOGOVAN_BASE_URL" default:"https://api.gogovanplus.com"`
	GoGoVanTimeout  time.Duration `envconfig:"GOGOVAN_TIMEOUT" default:"10s"`
	GoGoVanEnabled  bool          `envconfig:"GOGOVAN_ENABLED" default:"true"`
	GoGoVanUseMock  bool          `envconfig:"GOGOVAN_USE_MOCK" default:"false"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"vanward-dispatch"`
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
		attribute.Bool("gogovan.enabled", c.GoGoVanEnabled),
		attribute.Bool("gogovan.mock", c.GoGoVanUseMock),
	}
}
