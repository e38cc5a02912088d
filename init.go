package main

import (
	"context"

	"github.com/postmaster-io/postmaster-go/internal/config"
	"github.com/postmaster-io/postmaster-go/internal/telemetry"
	"github.com/postmaster-io/postmaster-go/pkg/postmaster"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// newClient wires configuration, logging, and tracing into a ready client.
// The returned cleanup flushes the logger and trace exporter.
func newClient(ctx context.Context) (*postmaster.Client, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var tracer trace.Tracer
	shutdown := func(context.Context) error { return nil }
	if cfg.OTELEnabled {
		var err error
		tracer, shutdown, err = telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
		if err != nil {
			logger.Warn("Failed to initialize tracer", zap.Error(err))
			tracer = nil
			shutdown = func(context.Context) error { return nil }
		}
	}

	clientCfg := postmaster.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		APIVersion: cfg.APIVersion,
		Timeout:    cfg.Timeout,
		UseMock:    cfg.UseMock,
	}

	var client *postmaster.Client
	if cfg.UseMock {
		client = postmaster.New(clientCfg, logger, tracer)
	} else {
		opts := []postmaster.HTTPTransportOption{
			postmaster.WithLogger(logger),
			postmaster.WithMetrics(telemetry.NewMetrics()),
		}
		if tracer != nil {
			opts = append(opts, postmaster.WithTracer(tracer))
		}
		transport := postmaster.NewHTTPTransport(postmaster.HTTPTransportConfig{
			BaseURL:    cfg.BaseURL,
			APIKey:     cfg.APIKey,
			APIVersion: cfg.APIVersion,
			Timeout:    cfg.Timeout,
		}, opts...)
		client = postmaster.NewWithTransport(clientCfg, transport, logger, tracer)
	}

	cleanup := func() {
		shutdown(context.Background())
		logger.Sync()
	}
	return client, cleanup, nil
}
