package postmaster_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/postmaster-io/postmaster-go/pkg/postmaster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateBox(t *testing.T) {
	mock := postmaster.NewMockTransport()
	mock.OnPost = func(ctx context.Context, path string, body any) (json.RawMessage, error) {
		payload, ok := body.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 12.0, payload["width"])
		assert.NotContains(t, payload, "weight", "zero weight is omitted")
		return json.RawMessage(`{"id":"B1"}`), nil
	}
	client := postmaster.NewWithTransport(postmaster.Config{}, mock, nil, nil)

	box, err := client.CreateBox(context.Background(), postmaster.BoxParams{
		Width:  12,
		Height: 6,
		Length: 10,
		Name:   "medium",
	})
	require.NoError(t, err)
	assert.Equal(t, "B1", box.ID())

	last := mock.LastRequest()
	assert.Equal(t, "POST", last.Method)
	assert.Equal(t, "/v1/packages", last.Path)
}

func TestClient_CreateBox_RequiresDimensions(t *testing.T) {
	client := postmaster.NewWithTransport(postmaster.Config{}, postmaster.NewMockTransport(), nil, nil)

	_, err := client.CreateBox(context.Background(), postmaster.BoxParams{Width: 12, Height: 6})
	require.Error(t, err)
	assert.True(t, postmaster.IsInvalidArgument(err))
}

func TestClient_ListBoxes(t *testing.T) {
	mock := postmaster.NewMockTransport()
	mock.OnGet = func(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
		return json.RawMessage(`{"cursor":"xyz","results":[{"id":"B1"}]}`), nil
	}
	client := postmaster.NewWithTransport(postmaster.Config{}, mock, nil, nil)

	page, err := client.ListBoxes(context.Background(), postmaster.ListOptions{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, "xyz", page.Cursor)
	require.Len(t, page.Results, 1)

	last := mock.LastRequest()
	assert.Equal(t, "/v1/packages", last.Path)
	assert.Equal(t, map[string]string{"limit": "5"}, last.Params)
}
