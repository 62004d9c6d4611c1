package kylas

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strconv"
)

// leadProjection is the column set returned by lead searches. Search results
// are summaries; GetLead returns the full record.
var leadProjection = []string{
	"id", "firstName", "lastName", "emails", "phoneNumbers",
	"ownerId", "companyName", "createdAt",
}

// CreateLead posts a normalized lead payload and returns the created record.
func (c *Client) CreateLead(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var created map[string]any
	if err := c.postJSON(ctx, "Create lead", "/leads", nil, payload, &created); err != nil {
		return nil, err
	}
	c.log.Info().Any("id", created["id"]).Msg("Lead created")
	return created, nil
}

// GetLead fetches a single lead by id.
func (c *Client) GetLead(ctx context.Context, leadID int64) (map[string]any, error) {
	var lead map[string]any
	path := fmt.Sprintf("/leads/%d", leadID)
	if err := c.getJSON(ctx, "Get lead", path, nil, &lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// UpdateLead fetches the lead, merges changes over it, and writes the full
// body back with PUT. The API has no partial update; sending only the
// changed fields would blank everything else. customFieldValues is merged
// key-by-key, other fields are replaced whole.
func (c *Client) UpdateLead(ctx context.Context, leadID int64, changes map[string]any) (map[string]any, error) {
	existing, err := c.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	merged := maps.Clone(existing)
	if merged == nil {
		merged = map[string]any{}
	}
	for key, value := range changes {
		if key == "customFieldValues" {
			if custom, ok := value.(map[string]any); ok {
				base, _ := merged["customFieldValues"].(map[string]any)
				combined := maps.Clone(base)
				if combined == nil {
					combined = map[string]any{}
				}
				maps.Copy(combined, custom)
				merged["customFieldValues"] = combined
				continue
			}
		}
		merged[key] = value
	}
	var updated map[string]any
	path := fmt.Sprintf("/leads/%d", leadID)
	if err := c.putJSON(ctx, "Update lead", path, merged, &updated); err != nil {
		return nil, err
	}
	c.log.Info().Int64("id", leadID).Msg("Lead updated")
	return updated, nil
}

// SearchLeads runs a compiled jsonRule search against POST /search/lead.
func (c *Client) SearchLeads(ctx context.Context, rule any, page, size int, sort string) (*Page, error) {
	return c.searchLead(ctx, "Search leads", rule, page, size, sort)
}

// SearchLeadsByTerm runs a multi-field term search with the given jsonRule.
func (c *Client) SearchLeadsByTerm(ctx context.Context, rule any, page, size int, sort string) (*Page, error) {
	return c.searchLead(ctx, "Search leads by term", rule, page, size, sort)
}

func (c *Client) searchLead(ctx context.Context, op string, rule any, page, size int, sort string) (*Page, error) {
	payload := map[string]any{
		"fields":   leadProjection,
		"jsonRule": rule,
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(min(size, 100)))
	if sort != "" {
		q.Set("sort", sort)
	}
	body, err := c.do(ctx, op, http.MethodPost, "/search/lead", q, payload)
	if err != nil {
		return nil, err
	}
	return parsePage(op, body)
}
