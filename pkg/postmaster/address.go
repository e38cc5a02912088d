package postmaster

import (
	"context"
	"encoding/json"
)

// addressFields is the whitelist for address records.
var addressFields = []string{
	"company", "contact", "line1", "line2", "line3",
	"city", "state", "zip_code", "country",
}

// AddressParams is the fixed parameter set for constructing an address.
// Line2 and Line3 are optional; when empty they are omitted from the field
// mapping entirely rather than sent as empty values.
type AddressParams struct {
	Company string
	Contact string
	Line1   string
	Line2   string
	Line3   string
	City    string
	State   string
	ZipCode string
	Country string
}

// Address represents a postal address to be validated against the API.
type Address struct {
	record *Record
}

// NewAddress constructs an address from its fixed parameter set.
func NewAddress(params AddressParams) *Address {
	fields := map[string]any{
		"company":  params.Company,
		"contact":  params.Contact,
		"line1":    params.Line1,
		"city":     params.City,
		"state":    params.State,
		"zip_code": params.ZipCode,
		"country":  params.Country,
	}
	if params.Line2 != "" {
		fields["line2"] = params.Line2
	}
	if params.Line3 != "" {
		fields["line3"] = params.Line3
	}

	// The whitelist cannot be violated from the fixed parameter set.
	record, _ := newRecord("Address", validatePath, addressFields, fields)
	return &Address{record: record}
}

// Field returns one of the address's stored field values.
func (a *Address) Field(name string) (any, error) {
	return a.record.Field(name)
}

// Fields returns a copy of the address's field mapping.
func (a *Address) Fields() map[string]any {
	return a.record.Fields()
}

// Validate submits the address for validation and returns the raw API
// response (typically the normalized address, or the candidate corrections).
func (a *Address) Validate(ctx context.Context, t Transport) (json.RawMessage, error) {
	return a.record.Submit(ctx, t)
}

// ValidateAddress validates an address against the API.
func (c *Client) ValidateAddress(ctx context.Context, addr *Address) (json.RawMessage, error) {
	return addr.Validate(ctx, c.transport)
}
