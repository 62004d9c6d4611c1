package kylas

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/schema"
)

// LeadFields fetches the tenant's lead field metadata, active fields only.
// Results are not cached; admins add and toggle fields at any time.
func (c *Client) LeadFields(ctx context.Context) ([]schema.Field, error) {
	const op = "Fetch lead fields"
	query := url.Values{}
	query.Set("entityType", "lead")
	query.Set("custom-only", "false")
	query.Set("page", "0")
	query.Set("size", "100")
	body, err := c.do(ctx, op, http.MethodGet, "/entities/lead/fields", query, nil)
	if err != nil {
		return nil, err
	}
	fields, err := schema.ParseFields(body)
	if err != nil {
		return nil, wrapError(op, err)
	}
	return fields, nil
}
