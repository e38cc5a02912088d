package postmaster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// MetricsRecorder receives per-request instrumentation from the transport.
type MetricsRecorder interface {
	RecordRequest(operation, status string, duration float64)
	RecordError(kind string)
}

// HTTPTransport is the production implementation of Transport using net/http.
// It is safe for concurrent use; all configuration is read-only after creation.
type HTTPTransport struct {
	baseURL    string
	apiKey     string
	apiVersion string
	userAgent  string
	httpClient *http.Client
	logger     *otelzap.Logger
	tracer     trace.Tracer
	metrics    MetricsRecorder
}

// HTTPTransportConfig holds configuration for the HTTP transport.
type HTTPTransportConfig struct {
	BaseURL    string
	APIKey     string
	APIVersion string        // Optional X-PM-Version header
	Timeout    time.Duration // Defaults to 30s
	UserAgent  string
}

// HTTPTransportOption configures optional instrumentation on the transport.
type HTTPTransportOption func(*HTTPTransport)

// WithLogger attaches a logger; requests are logged at debug, failures at error.
func WithLogger(logger *otelzap.Logger) HTTPTransportOption {
	return func(t *HTTPTransport) { t.logger = logger }
}

// WithTracer attaches a tracer; each request runs inside its own span.
func WithTracer(tracer trace.Tracer) HTTPTransportOption {
	return func(t *HTTPTransport) { t.tracer = tracer }
}

// WithMetrics attaches request counters and duration histograms.
func WithMetrics(m MetricsRecorder) HTTPTransportOption {
	return func(t *HTTPTransport) { t.metrics = m }
}

// NewHTTPTransport creates a new HTTP transport for production use.
func NewHTTPTransport(cfg HTTPTransportConfig, opts ...HTTPTransportOption) *HTTPTransport {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "postmaster-go/1.0"
	}

	t := &HTTPTransport{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		userAgent:  userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Get issues a GET request with optional query parameters.
func (t *HTTPTransport) Get(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
	return t.doRequest(ctx, http.MethodGet, path, params, nil)
}

// Post issues a POST request with a JSON body.
func (t *HTTPTransport) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return t.doRequest(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT request with a JSON body.
func (t *HTTPTransport) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return t.doRequest(ctx, http.MethodPut, path, nil, body)
}

// Delete issues a DELETE request.
func (t *HTTPTransport) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return t.doRequest(ctx, http.MethodDelete, path, nil, nil)
}

// doRequest performs one HTTP round trip with headers and authentication.
// Success is any 2xx status with a JSON body; everything else maps onto a
// typed *Error. No retries: a failed call fails immediately to the caller.
func (t *HTTPTransport) doRequest(ctx context.Context, method, path string, params map[string]string, body any) (json.RawMessage, error) {
	operation := method + " " + path

	if t.tracer != nil {
		var span trace.Span
		ctx, span = t.tracer.Start(ctx, operation,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.method", method),
				attribute.String("http.route", path),
			),
		)
		defer span.End()
	}

	start := time.Now()
	raw, err := t.roundTrip(ctx, method, path, params, body)
	t.record(ctx, operation, method, path, err, time.Since(start))
	return raw, err
}

func (t *HTTPTransport) roundTrip(ctx context.Context, method, path string, params map[string]string, body any) (json.RawMessage, error) {
	reqURL, err := t.buildURL(path, params)
	if err != nil {
		return nil, NewError(KindInvalidArgument, "invalid request path").
			WithRequest(method, path).WithCause(err)
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, NewError(KindInvalidArgument, "failed to marshal request body").
				WithRequest(method, path).WithCause(err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, NewError(KindInvalidArgument, "failed to create request").
			WithRequest(method, path).WithCause(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-PM-Auth", t.apiKey)
	req.Header.Set("X-Request-ID", uuid.New().String())
	req.Header.Set("User-Agent", t.userAgent)
	if t.apiVersion != "" {
		req.Header.Set("X-PM-Version", t.apiVersion)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, NewError(KindNetwork, "request failed").
			WithRequest(method, path).WithCause(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(KindNetwork, "failed to read response body").
			WithStatusCode(resp.StatusCode).WithRequest(method, path).WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, t.parseError(resp.StatusCode, method, path, raw)
	}

	if !json.Valid(raw) {
		return nil, NewError(KindDecode, "response body is not valid JSON").
			WithStatusCode(resp.StatusCode).WithRequest(method, path)
	}

	return json.RawMessage(raw), nil
}

// buildURL joins the configured base URL with the resource path and encodes
// query parameters.
func (t *HTTPTransport) buildURL(path string, params map[string]string) (string, error) {
	u, err := url.Parse(t.baseURL + "/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", err
	}

	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// parseError extracts a server-supplied message from a failure response body.
func (t *HTTPTransport) parseError(statusCode int, method, path string, body []byte) error {
	var msg apiMessage
	if err := json.Unmarshal(body, &msg); err == nil {
		m := msg.Message
		if m == "" {
			m = msg.Error
		}
		if m != "" {
			return NewError(KindTransport, m).
				WithStatusCode(statusCode).WithRequest(method, path)
		}
	}

	m := strings.TrimSpace(string(body))
	if m == "" {
		m = fmt.Sprintf("request failed with status %d", statusCode)
	}
	return NewError(KindTransport, m).
		WithStatusCode(statusCode).WithRequest(method, path)
}

// record emits instrumentation for one completed round trip.
func (t *HTTPTransport) record(ctx context.Context, operation, method, path string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	if t.metrics != nil {
		t.metrics.RecordRequest(operation, status, elapsed.Seconds())
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				t.metrics.RecordError(string(e.Kind))
			}
		}
	}

	if t.tracer != nil && err != nil {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if t.logger == nil {
		return
	}
	if err != nil {
		t.logger.Ctx(ctx).Error("Postmaster API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return
	}
	t.logger.Ctx(ctx).Debug("Postmaster API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Duration("elapsed", elapsed),
	)
}

// Ensure HTTPTransport implements Transport
var _ Transport = (*HTTPTransport)(nil)
