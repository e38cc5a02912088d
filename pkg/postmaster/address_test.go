package postmaster_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/postmaster-io/postmaster-go/pkg/postmaster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress_OptionalLinesOmitted(t *testing.T) {
	addr := postmaster.NewAddress(postmaster.AddressParams{
		Company: "ACME",
		Contact: "Wile E. Coyote",
		Line1:   "100 Centre St",
		City:    "New York",
		State:   "NY",
		ZipCode: "10013",
		Country: "US",
	})

	fields := addr.Fields()
	assert.NotContains(t, fields, "line2")
	assert.NotContains(t, fields, "line3")
	assert.Equal(t, "100 Centre St", fields["line1"])
	assert.Equal(t, "10013", fields["zip_code"])
}

func TestNewAddress_OptionalLinesIncludedVerbatim(t *testing.T) {
	addr := postmaster.NewAddress(postmaster.AddressParams{
		Line1:   "100 Centre St",
		Line2:   "Suite 4",
		City:    "New York",
		State:   "NY",
		ZipCode: "10013",
	})

	fields := addr.Fields()
	assert.Equal(t, "Suite 4", fields["line2"])
	assert.NotContains(t, fields, "line3")
}

func TestClient_ValidateAddress_PutsCollection(t *testing.T) {
	mock := postmaster.NewMockTransport()
	mock.OnPut = func(ctx context.Context, path string, body any) (json.RawMessage, error) {
		payload, ok := body.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "New York", payload["city"])
		return json.RawMessage(`{"status":"OK"}`), nil
	}
	client := postmaster.NewWithTransport(postmaster.Config{}, mock, nil, nil)

	addr := postmaster.NewAddress(postmaster.AddressParams{
		Line1:   "100 Centre St",
		City:    "New York",
		State:   "NY",
		ZipCode: "10013",
	})

	raw, err := client.ValidateAddress(context.Background(), addr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"OK"}`, string(raw))

	last := mock.LastRequest()
	assert.Equal(t, "PUT", last.Method)
	assert.Equal(t, "/v1/validate", last.Path)
}

func TestAddress_Field_Missing(t *testing.T) {
	addr := postmaster.NewAddress(postmaster.AddressParams{Line1: "100 Centre St"})

	_, err := addr.Field("line2")
	require.Error(t, err)
	assert.True(t, postmaster.IsInvalidArgument(err))
}
