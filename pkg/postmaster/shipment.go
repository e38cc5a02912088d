package postmaster

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"
)

// shipmentFields is the whitelist for caller-supplied shipment fields.
// Server-assigned fields merged from responses are not constrained by it.
var shipmentFields = []string{
	"to", "from", "packages", "service", "carrier", "reference", "options",
}

// CreateShipmentParams holds the fields for creating a shipment.
// To, Packages, and Service are required.
type CreateShipmentParams struct {
	To        map[string]any // ship-to address: company, contact, street, city, state, zip
	Packages  any            // one package mapping or a list of them: weight, length, width, height
	Service   string         // e.g. "ground", "2day", "overnight"
	From      map[string]any // optional ship-from address, account default when omitted
	Carrier   string         // optional carrier override
	Reference string         // optional caller reference
	Options   map[string]any // optional carrier-specific options
}

// Shipment represents one shipment on the Postmaster API.
type Shipment struct {
	record    *Record
	transport Transport
}

// ID returns the server-assigned shipment identifier, or "" before creation.
func (s *Shipment) ID() string {
	v, ok := s.record.fields["id"]
	if !ok {
		return ""
	}
	return stringifyID(v)
}

// Field returns one of the shipment's stored field values.
func (s *Shipment) Field(name string) (any, error) {
	return s.record.Field(name)
}

// Fields returns a copy of the shipment's field mapping.
func (s *Shipment) Fields() map[string]any {
	return s.record.Fields()
}

// Track fetches tracking information for this shipment.
func (s *Shipment) Track(ctx context.Context) (*Tracking, error) {
	id := s.ID()
	if id == "" {
		return nil, NewError(KindInvalidArgument, "shipment has not been created").
			WithCause(ErrNoID)
	}

	raw, err := s.record.FetchOne(ctx, s.transport, id, "track", nil)
	if err != nil {
		return nil, err
	}
	return newTracking(raw)
}

// Void cancels this shipment. The response carries no information the caller
// needs, so it is discarded; failures still surface as errors.
func (s *Shipment) Void(ctx context.Context) error {
	id := s.ID()
	if id == "" {
		return NewError(KindInvalidArgument, "shipment has not been created").
			WithCause(ErrNoID)
	}

	_, err := s.record.Upsert(ctx, s.transport, id, "void")
	return err
}

// CreateShipment creates a new shipment. The server response is merged into
// the returned shipment, so the record carries both the submitted fields and
// the server-assigned ones (id, status, tracking).
func (c *Client) CreateShipment(ctx context.Context, params CreateShipmentParams) (*Shipment, error) {
	if params.To == nil {
		return nil, NewError(KindInvalidArgument, "shipment requires a to address").
			WithCause(ErrMissingField)
	}
	if params.Packages == nil {
		return nil, NewError(KindInvalidArgument, "shipment requires packages").
			WithCause(ErrMissingField)
	}
	if params.Service == "" {
		return nil, NewError(KindInvalidArgument, "shipment requires a service").
			WithCause(ErrMissingField)
	}

	fields := map[string]any{
		"to":       params.To,
		"packages": params.Packages,
		"service":  params.Service,
	}
	if params.From != nil {
		fields["from"] = params.From
	}
	if params.Carrier != "" {
		fields["carrier"] = params.Carrier
	}
	if params.Reference != "" {
		fields["reference"] = params.Reference
	}
	if params.Options != nil {
		fields["options"] = params.Options
	}

	record, err := newRecord("Shipment", shipmentsPath, shipmentFields, fields)
	if err != nil {
		return nil, err
	}

	raw, err := record.Upsert(ctx, c.transport, "", "")
	if err != nil {
		return nil, err
	}
	if err := record.merge(raw); err != nil {
		return nil, err
	}

	shipment := &Shipment{record: record, transport: c.transport}
	if c.logger != nil {
		c.logger.Ctx(ctx).Info("Created shipment",
			zap.String("id", shipment.ID()),
			zap.String("service", params.Service),
		)
	}
	return shipment, nil
}

// RetrieveShipment fetches one shipment by id.
func (c *Client) RetrieveShipment(ctx context.Context, id string) (*Shipment, error) {
	record, err := newRecord("Shipment", shipmentsPath, nil, nil)
	if err != nil {
		return nil, err
	}

	raw, err := record.FetchOne(ctx, c.transport, id, "", nil)
	if err != nil {
		return nil, err
	}
	if err := record.merge(raw); err != nil {
		return nil, err
	}

	return &Shipment{record: record, transport: c.transport}, nil
}

// TrackShipment fetches tracking information for a shipment by id.
func (c *Client) TrackShipment(ctx context.Context, id string) (*Tracking, error) {
	record, err := newRecord("Shipment", shipmentsPath, nil, nil)
	if err != nil {
		return nil, err
	}

	raw, err := record.FetchOne(ctx, c.transport, id, "track", nil)
	if err != nil {
		return nil, err
	}
	return newTracking(raw)
}

// VoidShipmentByID cancels a shipment by id using the DELETE form of the void
// endpoint. It returns true only when the server confirms with a message of
// exactly "OK"; any other success shape means "not confirmed" and returns
// false without an error. Transport failures still surface as errors.
//
// The API exposes two void forms with different verbs (PUT on Shipment.Void,
// DELETE here); both are preserved as documented.
func (c *Client) VoidShipmentByID(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, NewError(KindInvalidArgument, "shipment id is required").
			WithCause(ErrNoID)
	}

	raw, err := c.transport.Delete(ctx, shipmentsPath+"/"+id+"/void")
	if err != nil {
		return false, err
	}

	var msg apiMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return false, nil
	}
	return msg.Message == "OK", nil
}

// ListShipments lists the account's shipments one page at a time. The cursor
// and limit pass through to the API untouched, and the page comes back as the
// server sent it; advancing is the caller's job.
func (c *Client) ListShipments(ctx context.Context, opts ListOptions) (*Page, error) {
	record, err := newRecord("Shipment", shipmentsPath, nil, nil)
	if err != nil {
		return nil, err
	}

	raw, err := record.FetchAll(ctx, c.transport, opts.queryParams())
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, NewError(KindDecode, "shipment listing is not a page object").
			WithCause(err)
	}
	return &page, nil
}

// stringifyID renders a server-assigned identifier, which some endpoints
// return as a JSON string and others as a number.
func stringifyID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	default:
		return ""
	}
}
