package postmaster

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord_WhitelistAllows(t *testing.T) {
	fields := map[string]any{"carrier": "ups", "weight": 1.5}

	record, err := newRecord("Rate", ratesPath, rateFields, fields)
	require.NoError(t, err)
	assert.Equal(t, fields, record.Fields())
}

func TestNewRecord_WhitelistRejects(t *testing.T) {
	_, err := newRecord("Rate", ratesPath, rateFields, map[string]any{
		"carrier": "ups",
		"colour":  "red",
	})

	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "colour")
	assert.Contains(t, err.Error(), "Rate")
}

func TestNewRecord_EmptyWhitelistUnrestricted(t *testing.T) {
	record, err := newRecord("Tracking", trackPath, nil, map[string]any{
		"anything": "goes",
	})

	require.NoError(t, err)
	v, err := record.Field("anything")
	require.NoError(t, err)
	assert.Equal(t, "goes", v)
}

func TestRecord_Field_Missing(t *testing.T) {
	record, err := newRecord("Shipment", shipmentsPath, nil, nil)
	require.NoError(t, err)

	_, err = record.Field("status")
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestRecord_Merge_ServerFieldsBypassWhitelist(t *testing.T) {
	record, err := newRecord("Rate", ratesPath, rateFields, map[string]any{
		"carrier": "ups",
	})
	require.NoError(t, err)

	require.NoError(t, record.merge(json.RawMessage(`{"charge":"12.50","id":7}`)))

	v, err := record.Field("charge")
	require.NoError(t, err)
	assert.Equal(t, "12.50", v)
}

func TestRecord_Merge_NonObject(t *testing.T) {
	record, err := newRecord("Shipment", shipmentsPath, nil, nil)
	require.NoError(t, err)

	err = record.merge(json.RawMessage(`[1,2,3]`))
	require.Error(t, err)
	assert.True(t, IsDecode(err))
}

func TestRecord_Upsert_CreateVsUpdate(t *testing.T) {
	record, err := newRecord("Shipment", shipmentsPath, nil, map[string]any{"service": "ground"})
	require.NoError(t, err)

	mock := NewMockTransport()
	ctx := context.Background()

	_, err = record.Upsert(ctx, mock, "", "")
	require.NoError(t, err)

	_, err = record.Upsert(ctx, mock, "S1", "void")
	require.NoError(t, err)

	requests := mock.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "POST", requests[0].Method)
	assert.Equal(t, "/v1/shipments", requests[0].Path)
	assert.Equal(t, "PUT", requests[1].Method)
	assert.Equal(t, "/v1/shipments/S1/void", requests[1].Path)
}

func TestRecord_FetchOne_RequiresID(t *testing.T) {
	record, err := newRecord("Shipment", shipmentsPath, nil, nil)
	require.NoError(t, err)

	_, err = record.FetchOne(context.Background(), NewMockTransport(), "", "", nil)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestStringifyID(t *testing.T) {
	assert.Equal(t, "S1", stringifyID("S1"))
	assert.Equal(t, "1042", stringifyID(float64(1042)))
	assert.Equal(t, "", stringifyID(true))
}
