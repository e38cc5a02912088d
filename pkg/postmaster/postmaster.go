// Package postmaster is a Go client for the Postmaster shipping API:
// rate quoting, shipment and label creation, tracking, address validation,
// and box management.
//
// Every verb is a single synchronous round trip against the REST API. The
// client holds no state between calls beyond its read-only configuration,
// so one Client may be shared across goroutines.
package postmaster

import (
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

// Collection paths on the Postmaster API.
const (
	shipmentsPath = "/v1/shipments"
	ratesPath     = "/v1/rates"
	timesPath     = "/v1/times"
	validatePath  = "/v1/validate"
	boxesPath     = "/v1/packages"
	trackPath     = "/v1/track"
	tokenPath     = "/v1/token"
)

// Config holds Postmaster client configuration.
type Config struct {
	APIKey     string
	BaseURL    string
	APIVersion string        // Optional, pins the API version header
	Timeout    time.Duration // HTTP timeout, defaults to 30s
	UseMock    bool          // When true, uses the mock transport
}

// Client is the Postmaster API client. It delegates all I/O to the underlying
// Transport (mock or HTTP) and exposes one method per API operation.
type Client struct {
	config    Config
	transport Transport
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Postmaster client. If cfg.UseMock is true, it uses a mock
// transport for offline use. Otherwise it uses the real HTTP transport,
// instrumented with the supplied logger and tracer.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var transport Transport

	if cfg.UseMock {
		transport = NewMockTransport()
	} else {
		opts := []HTTPTransportOption{}
		if logger != nil {
			opts = append(opts, WithLogger(logger))
		}
		if tracer != nil {
			opts = append(opts, WithTracer(tracer))
		}
		transport = NewHTTPTransport(HTTPTransportConfig{
			BaseURL:    cfg.BaseURL,
			APIKey:     cfg.APIKey,
			APIVersion: cfg.APIVersion,
			Timeout:    cfg.Timeout,
		}, opts...)
	}

	return &Client{
		config:    cfg,
		transport: transport,
		logger:    logger,
		tracer:    tracer,
	}
}

// NewWithTransport creates a new Postmaster client with a custom transport.
// This is useful for injecting mock transports in tests.
func NewWithTransport(cfg Config, transport Transport, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		transport: transport,
		logger:    logger,
		tracer:    tracer,
	}
}

// Transport returns the client's underlying transport.
func (c *Client) Transport() Transport {
	return c.transport
}
