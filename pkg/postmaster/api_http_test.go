package postmaster_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/postmaster-io/postmaster-go/pkg/postmaster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTTPTransport(t *testing.T, handler http.HandlerFunc) (*postmaster.HTTPTransport, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	transport := postmaster.NewHTTPTransport(postmaster.HTTPTransportConfig{
		BaseURL:    srv.URL,
		APIKey:     "tt_testkey",
		APIVersion: "v1",
	})
	return transport, srv
}

func TestHTTPTransport_Headers(t *testing.T) {
	transport, _ := newHTTPTransport(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tt_testkey", r.Header.Get("X-PM-Auth"))
		assert.Equal(t, "v1", r.Header.Get("X-PM-Version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{}`))
	})

	_, err := transport.Get(context.Background(), "/v1/token", nil)
	require.NoError(t, err)
}

func TestHTTPTransport_Get_QueryParams(t *testing.T) {
	transport, _ := newHTTPTransport(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/shipments", r.URL.Path)
		assert.Equal(t, "abc", r.URL.Query().Get("cursor"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"results":[]}`))
	})

	_, err := transport.Get(context.Background(), "/v1/shipments", map[string]string{
		"cursor": "abc",
		"limit":  "10",
	})
	require.NoError(t, err)
}

func TestHTTPTransport_Post_SerializesBody(t *testing.T) {
	transport, _ := newHTTPTransport(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ground", body["service"])
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"S1"}`))
	})

	raw, err := transport.Post(context.Background(), "/v1/shipments", map[string]any{
		"service": "ground",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"S1"}`, string(raw))
}

func TestHTTPTransport_ArrayResponse(t *testing.T) {
	transport, _ := newHTTPTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"S1"},{"id":"S2"}]`))
	})

	raw, err := transport.Get(context.Background(), "/v1/shipments", nil)
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Len(t, items, 2)
}

func TestHTTPTransport_ServerMessageExtracted(t *testing.T) {
	transport, _ := newHTTPTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"weight is required"}`))
	})

	_, err := transport.Put(context.Background(), "/v1/rates", map[string]any{})
	require.Error(t, err)
	assert.True(t, postmaster.IsTransport(err))
	assert.Equal(t, 400, postmaster.StatusCode(err))
	assert.Contains(t, err.Error(), "weight is required")
}

func TestHTTPTransport_ErrorKeyExtracted(t *testing.T) {
	transport, _ := newHTTPTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad credentials"}`))
	})

	_, err := transport.Get(context.Background(), "/v1/token", nil)
	require.Error(t, err)
	assert.Equal(t, 401, postmaster.StatusCode(err))
	assert.Contains(t, err.Error(), "bad credentials")
}

func TestHTTPTransport_NonJSONFailureBody(t *testing.T) {
	transport, _ := newHTTPTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream timeout`))
	})

	_, err := transport.Get(context.Background(), "/v1/token", nil)
	require.Error(t, err)
	assert.True(t, postmaster.IsTransport(err))
	assert.Contains(t, err.Error(), "upstream timeout")
}

func TestHTTPTransport_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	transport := postmaster.NewHTTPTransport(postmaster.HTTPTransportConfig{
		BaseURL: srv.URL,
		APIKey:  "tt_testkey",
	})
	srv.Close()

	_, err := transport.Get(context.Background(), "/v1/token", nil)
	require.Error(t, err)
	assert.True(t, postmaster.IsNetwork(err))
	assert.Equal(t, 0, postmaster.StatusCode(err))
}

func TestHTTPTransport_InvalidJSONSuccessBody(t *testing.T) {
	transport, _ := newHTTPTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": oops`))
	})

	_, err := transport.Get(context.Background(), "/v1/token", nil)
	require.Error(t, err)
	assert.True(t, postmaster.IsDecode(err))
}

func TestHTTPTransport_Delete(t *testing.T) {
	transport, _ := newHTTPTransport(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/shipments/S1/void", r.URL.Path)
		w.Write([]byte(`{"message":"OK"}`))
	})

	raw, err := transport.Delete(context.Background(), "/v1/shipments/S1/void")
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"OK"}`, string(raw))
}
