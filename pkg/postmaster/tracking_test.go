package postmaster_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/postmaster-io/postmaster-go/pkg/postmaster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_TrackByReference(t *testing.T) {
	mock := postmaster.NewMockTransport()
	mock.OnGet = func(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
		return json.RawMessage(`{"status":"Delivered","carrier":"ups"}`), nil
	}
	client := postmaster.NewWithTransport(postmaster.Config{}, mock, nil, nil)

	tracking, err := client.TrackByReference(context.Background(), "1Z1896X70305267337")
	require.NoError(t, err)

	status, err := tracking.Field("status")
	require.NoError(t, err)
	assert.Equal(t, "Delivered", status)

	last := mock.LastRequest()
	assert.Equal(t, "GET", last.Method)
	assert.Equal(t, "/v1/track", last.Path)
	assert.Equal(t, map[string]string{"tracking": "1Z1896X70305267337"}, last.Params)
}

func TestClient_TrackByReference_RequiresNumber(t *testing.T) {
	client := postmaster.NewWithTransport(postmaster.Config{}, postmaster.NewMockTransport(), nil, nil)

	_, err := client.TrackByReference(context.Background(), "")
	require.Error(t, err)
	assert.True(t, postmaster.IsInvalidArgument(err))
}

func TestClient_GetToken(t *testing.T) {
	mock := postmaster.NewMockTransport()
	mock.OnGet = func(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
		return json.RawMessage(`{"token":"tt_1234"}`), nil
	}
	client := postmaster.NewWithTransport(postmaster.Config{}, mock, nil, nil)

	raw, err := client.GetToken(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"tt_1234"}`, string(raw))
	assert.Equal(t, "/v1/token", mock.LastRequest().Path)
}
