package postmaster

import (
	"context"
	"encoding/json"
)

// boxFields is the whitelist for box records.
var boxFields = []string{"name", "width", "height", "length", "weight"}

// BoxParams holds the fields for defining a box type.
// Width, Height, and Length are required.
type BoxParams struct {
	Width  float64
	Height float64
	Length float64
	Weight float64 // Optional maximum weight
	Name   string  // Optional display name
}

// Box represents a reusable box (package) definition on the account.
type Box struct {
	record *Record
}

// ID returns the server-assigned box identifier, or "" before creation.
func (b *Box) ID() string {
	v, ok := b.record.fields["id"]
	if !ok {
		return ""
	}
	return stringifyID(v)
}

// Field returns one of the box's stored field values.
func (b *Box) Field(name string) (any, error) {
	return b.record.Field(name)
}

// Fields returns a copy of the box's field mapping.
func (b *Box) Fields() map[string]any {
	return b.record.Fields()
}

// CreateBox defines a new box type on the account. The server response is
// merged into the returned box.
func (c *Client) CreateBox(ctx context.Context, params BoxParams) (*Box, error) {
	if params.Width <= 0 || params.Height <= 0 || params.Length <= 0 {
		return nil, NewError(KindInvalidArgument, "box requires positive dimensions").
			WithCause(ErrMissingField)
	}

	fields := map[string]any{
		"width":  params.Width,
		"height": params.Height,
		"length": params.Length,
	}
	if params.Weight > 0 {
		fields["weight"] = params.Weight
	}
	if params.Name != "" {
		fields["name"] = params.Name
	}

	record, err := newRecord("Box", boxesPath, boxFields, fields)
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

	return &Box{record: record}, nil
}

// ListBoxes lists the account's box definitions one page at a time, with
// caller-driven cursor/limit pagination.
func (c *Client) ListBoxes(ctx context.Context, opts ListOptions) (*Page, error) {
	record, err := newRecord("Box", boxesPath, nil, nil)
	if err != nil {
		return nil, err
	}

	raw, err := record.FetchAll(ctx, c.transport, opts.queryParams())
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, NewError(KindDecode, "box listing is not a page object").
			WithCause(err)
	}
	return &page, nil
}
