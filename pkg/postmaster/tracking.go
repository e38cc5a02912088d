package postmaster

import (
	"context"
	"encoding/json"
)

// Tracking represents tracking information for one shipment, as returned by
// the track sub-action or the track-by-reference endpoint.
type Tracking struct {
	record *Record
}

// newTracking wraps a raw tracking response.
func newTracking(raw json.RawMessage) (*Tracking, error) {
	record, err := newRecord("Tracking", trackPath, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := record.merge(raw); err != nil {
		return nil, err
	}
	return &Tracking{record: record}, nil
}

// Field returns one of the tracking record's stored field values.
func (t *Tracking) Field(name string) (any, error) {
	return t.record.Field(name)
}

// Fields returns a copy of the tracking record's field mapping.
func (t *Tracking) Fields() map[string]any {
	return t.record.Fields()
}

// TrackByReference tracks any package by its carrier-specific tracking number.
// Packages not shipped through Postmaster come back with less detail.
func (c *Client) TrackByReference(ctx context.Context, trackingNumber string) (*Tracking, error) {
	if trackingNumber == "" {
		return nil, NewError(KindInvalidArgument, "tracking number is required").
			WithCause(ErrMissingField)
	}

	raw, err := c.transport.Get(ctx, trackPath, map[string]string{
		"tracking": trackingNumber,
	})
	if err != nil {
		return nil, err
	}
	return newTracking(raw)
}
