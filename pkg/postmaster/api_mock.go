package postmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RecordedRequest captures one request issued through the MockTransport.
type RecordedRequest struct {
	Method string
	Path   string
	Params map[string]string
	Body   any
}

// MockTransport is a mock implementation of Transport for testing and for
// offline use of the CLI. Every request is recorded; per-verb hooks override
// the default canned responses.
type MockTransport struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnGet    func(ctx context.Context, path string, params map[string]string) (json.RawMessage, error)
	OnPost   func(ctx context.Context, path string, body any) (json.RawMessage, error)
	OnPut    func(ctx context.Context, path string, body any) (json.RawMessage, error)
	OnDelete func(ctx context.Context, path string) (json.RawMessage, error)

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewMockTransport creates a new mock transport with default behavior.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Requests returns a copy of all recorded requests in issue order.
func (m *MockTransport) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recently recorded request, or nil.
func (m *MockTransport) LastRequest() *RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	r := m.requests[len(m.requests)-1]
	return &r
}

func (m *MockTransport) before(req RecordedRequest) error {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return NewError(KindTransport, "simulated API error").
			WithStatusCode(500).WithRequest(req.Method, req.Path)
	}
	return nil
}

// Get returns canned collection or entity data.
func (m *MockTransport) Get(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
	if err := m.before(RecordedRequest{Method: "GET", Path: path, Params: params}); err != nil {
		return nil, err
	}
	if m.OnGet != nil {
		return m.OnGet(ctx, path, params)
	}
	return json.RawMessage(fmt.Sprintf(`{"id":%q,"status":"Delivered"}`, "pm-"+uuid.New().String()[:8])), nil
}

// Post echoes a created entity with a generated id.
func (m *MockTransport) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	if err := m.before(RecordedRequest{Method: "POST", Path: path, Body: body}); err != nil {
		return nil, err
	}
	if m.OnPost != nil {
		return m.OnPost(ctx, path, body)
	}
	return json.RawMessage(fmt.Sprintf(`{"id":%q,"status":"Created"}`, "pm-"+uuid.New().String()[:8])), nil
}

// Put acknowledges an update.
func (m *MockTransport) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	if err := m.before(RecordedRequest{Method: "PUT", Path: path, Body: body}); err != nil {
		return nil, err
	}
	if m.OnPut != nil {
		return m.OnPut(ctx, path, body)
	}
	return json.RawMessage(`{"message":"OK"}`), nil
}

// Delete acknowledges a deletion.
func (m *MockTransport) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	if err := m.before(RecordedRequest{Method: "DELETE", Path: path}); err != nil {
		return nil, err
	}
	if m.OnDelete != nil {
		return m.OnDelete(ctx, path)
	}
	return json.RawMessage(`{"message":"OK"}`), nil
}

var _ Transport = (*MockTransport)(nil)
