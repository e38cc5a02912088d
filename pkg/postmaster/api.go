package postmaster

import (
	"context"
	"encoding/json"
	"strconv"
)

// Transport defines the interface for issuing requests against the Postmaster
// REST API. This abstraction allows mock implementations during testing and
// the real HTTP implementation in production.
//
// Implementations return the raw JSON response body on success; callers decode
// it into the shape they expect. An API response may be an object or an array,
// so no decoding happens at this layer.
type Transport interface {
	// Get issues a GET request with optional query parameters.
	Get(ctx context.Context, path string, params map[string]string) (json.RawMessage, error)

	// Post issues a POST request with a JSON-serializable body.
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)

	// Put issues a PUT request with a JSON-serializable body.
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)

	// Delete issues a DELETE request.
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}

// apiMessage is the error payload shape the API uses for failure responses.
// Some endpoints report under "message", others under "error".
type apiMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Page is the raw shape of a paginated collection response. Pagination is
// caller-driven: pass Cursor back as the cursor query parameter to advance.
// The client never interprets pagination state itself.
type Page struct {
	Cursor         string            `json:"cursor"`
	PreviousCursor string            `json:"previousCursor"`
	Results        []json.RawMessage `json:"results"`
}

// ListOptions carries caller-driven pagination parameters for collection
// listings. Zero values are omitted from the query string entirely.
type ListOptions struct {
	Cursor string
	Limit  int
}

func (o ListOptions) queryParams() map[string]string {
	params := map[string]string{}
	if o.Cursor != "" {
		params["cursor"] = o.Cursor
	}
	if o.Limit > 0 {
		params["limit"] = strconv.Itoa(o.Limit)
	}
	return params
}
