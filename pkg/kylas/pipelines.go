package kylas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// LookupPipelines lists pipelines for an entity type, filtered by query.
func (c *Client) LookupPipelines(ctx context.Context, entityType, query string, page, size int) (*Page, error) {
	const op = "Pipeline lookup"
	q := url.Values{}
	q.Set("entityType", entityType)
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	body, err := c.do(ctx, op, http.MethodGet, "/pipelines/lookup", q, nil)
	if err != nil {
		return nil, err
	}
	return parsePage(op, body)
}

// PipelineSummary fetches stage summaries for one pipeline via
// POST /pipelines/summary. The endpoint filters by its own jsonRule dialect
// on the pipeline id. Some deployments return a bare array, others a page
// envelope.
func (c *Client) PipelineSummary(ctx context.Context, pipelineID int64) ([]map[string]any, error) {
	const op = "Pipeline summary"
	payload := map[string]any{
		"jsonRule": map[string]any{
			"condition": "AND",
			"rules": []map[string]any{{
				"operator": "in",
				"id":       "id",
				"field":    "id",
				"type":     "long",
				"value":    []int64{pipelineID},
			}},
			"valid": true,
		},
	}
	body, err := c.do(ctx, op, http.MethodPost, "/pipelines/summary", nil, payload)
	if err != nil {
		return nil, err
	}
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	page, err := parsePage(op, body)
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}

// PipelineByID fetches full pipeline details from GET /pipelines/{id},
// including lostReasons and unqualifiedReasons.
func (c *Client) PipelineByID(ctx context.Context, pipelineID int64) (map[string]any, error) {
	var pipeline map[string]any
	path := fmt.Sprintf("/pipelines/%d", pipelineID)
	if err := c.getJSON(ctx, "Get pipeline details", path, nil, &pipeline); err != nil {
		return nil, err
	}
	return pipeline, nil
}
