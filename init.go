package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/vanward/dispatch/internal/config"
	"github.com/vanward/dispatch/internal/telemetry"
	"github.com/vanward/dispatch/pkg/courier"
	"github.com/vanward/dispatch/pkg/courier/gogovan"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
	return shutdown, err
}

func initCourierRegistry(cfg *config.Config, logger *otelzap.Logger) *courier.Registry {
	registry := courier.NewRegistry()

	var tracer trace.Tracer
	// tracer would be initialized from otel.GetTracerProvider().Tracer(cfg.ServiceName)

	if cfg.GoGoVanEnabled {
		ggv := gogovan.New(gogovan.Config{
			Email:    cfg.GoGoVanEmail,
			Password: cfg.GoGoVanPassword,
			BaseURL:  cfg.GoGoVanBaseURL,
			Timeout:  cfg.GoGoVanTimeout,
			UseMock:  cfg.GoGoVanUseMock,
		}, logger, tracer)
		registry.Register(ggv)
	}

	return registry
}
