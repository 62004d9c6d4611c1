package kylas

import "encoding/json"

// Page is a tolerant view of Kylas list responses. Endpoints disagree on
// envelope keys, so both content/data and totalElements/total are accepted.
type Page struct {
	Content    []map[string]any
	Total      int
	TotalPages int
}

type pageEnvelope struct {
	Content       []map[string]any `json:"content"`
	Data          []map[string]any `json:"data"`
	TotalElements *int             `json:"totalElements"`
	Total         *int             `json:"total"`
	TotalPages    *int             `json:"totalPages"`
}

func parsePage(op string, body []byte) (*Page, error) {
	var env pageEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, wrapError(op, err)
	}
	content := env.Content
	if content == nil {
		content = env.Data
	}
	if content == nil {
		content = []map[string]any{}
	}
	page := &Page{Content: content, Total: len(content), TotalPages: 1}
	switch {
	case env.TotalElements != nil:
		page.Total = *env.TotalElements
	case env.Total != nil:
		page.Total = *env.Total
	}
	if env.TotalPages != nil {
		page.TotalPages = *env.TotalPages
	}
	return page, nil
}
