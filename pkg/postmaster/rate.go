package postmaster

import (
	"context"
	"encoding/json"
)

// Whitelists for the quote-style records. They never persist server-side, so
// the whitelist is the only construction-time guard they get.
var (
	rateFields    = []string{"from_zip", "to_zip", "weight", "carrier", "service", "packages"}
	transitFields = []string{"from_zip", "to_zip", "weight", "carrier"}
)

// RateParams holds the fields for a rate quote. Carrier, ToZip, and Weight
// are required; Service defaults to "ground".
type RateParams struct {
	Carrier string
	ToZip   string
	Weight  float64
	FromZip string // Account default when omitted
	Service string
}

// TransitParams holds the fields for a transit-time lookup.
// FromZip, ToZip, and Weight are required.
type TransitParams struct {
	FromZip string
	ToZip   string
	Weight  float64
	Carrier string // All carriers when omitted
}

// GetRate quotes the cost to ship a package from point A to point B. The
// quote is a computation, not a persisted resource, so the raw response is
// returned as-is.
func (c *Client) GetRate(ctx context.Context, params RateParams) (json.RawMessage, error) {
	if params.Carrier == "" {
		return nil, NewError(KindInvalidArgument, "rate requires a carrier").
			WithCause(ErrMissingField)
	}
	if params.ToZip == "" {
		return nil, NewError(KindInvalidArgument, "rate requires a to_zip").
			WithCause(ErrMissingField)
	}
	if params.Weight <= 0 {
		return nil, NewError(KindInvalidArgument, "rate requires a positive weight").
			WithCause(ErrMissingField)
	}

	service := params.Service
	if service == "" {
		service = "ground"
	}

	fields := map[string]any{
		"carrier": params.Carrier,
		"to_zip":  params.ToZip,
		"weight":  params.Weight,
		"service": service,
	}
	if params.FromZip != "" {
		fields["from_zip"] = params.FromZip
	}

	record, err := newRecord("Rate", ratesPath, rateFields, fields)
	if err != nil {
		return nil, err
	}
	return record.Submit(ctx, c.transport)
}

// GetTransitTime finds the time needed for a package to get from point A to
// point B. Like GetRate, the result is ephemeral and returned raw.
func (c *Client) GetTransitTime(ctx context.Context, params TransitParams) (json.RawMessage, error) {
	if params.FromZip == "" {
		return nil, NewError(KindInvalidArgument, "transit time requires a from_zip").
			WithCause(ErrMissingField)
	}
	if params.ToZip == "" {
		return nil, NewError(KindInvalidArgument, "transit time requires a to_zip").
			WithCause(ErrMissingField)
	}
	if params.Weight <= 0 {
		return nil, NewError(KindInvalidArgument, "transit time requires a positive weight").
			WithCause(ErrMissingField)
	}

	fields := map[string]any{
		"from_zip": params.FromZip,
		"to_zip":   params.ToZip,
		"weight":   params.Weight,
	}
	if params.Carrier != "" {
		fields["carrier"] = params.Carrier
	}

	record, err := newRecord("TimeInTransit", timesPath, transitFields, fields)
	if err != nil {
		return nil, err
	}
	return record.Submit(ctx, c.transport)
}
