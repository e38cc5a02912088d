package postmaster

import (
	"context"
	"encoding/json"
)

// GetToken fetches a short-lived API token for the account, raw as the
// server returns it.
func (c *Client) GetToken(ctx context.Context) (json.RawMessage, error) {
	return c.transport.Get(ctx, tokenPath, nil)
}
