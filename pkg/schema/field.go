// Package schema is the per-call read model over a tenant's lead field
// metadata: response parsing, the derived indexes the payload normalizer and
// search compiler consume, and the agent-facing cheat sheet. Nothing here is
// cached or persisted; callers fetch fresh metadata per tool call.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Field is one lead field descriptor from GET /entities/lead/fields.
// Active is a pointer because the API omits the key for active fields.
type Field struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Label       string    `json:"label"`
	Type        string    `json:"type"`
	Standard    bool      `json:"standard"`
	Required    bool      `json:"required"`
	Filterable  bool      `json:"filterable"`
	Active      *bool     `json:"active"`
	Picklist    *Picklist `json:"picklist"`
}

// Picklist wraps the option list the way the API nests it.
type Picklist struct {
	Values []PicklistOption `json:"values"`
}

// PicklistOption is one selectable value of a PICK_LIST or MULTI_PICKLIST field.
type PicklistOption struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Label       string `json:"label"`
}

func (f Field) IsActive() bool { return f.Active == nil || *f.Active }

// DisplayLabel returns the human-facing label, preferring displayName.
func (f Field) DisplayLabel() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	if f.Label != "" {
		return f.Label
	}
	return "Unknown"
}

// IDString returns the decimal field id, empty when unset.
func (f Field) IDString() string { return formatID(f.ID) }

// DisplayLabel returns the option's human-facing label.
func (o PicklistOption) DisplayLabel() string {
	if o.DisplayName != "" {
		return o.DisplayName
	}
	if o.Label != "" {
		return o.Label
	}
	if o.Name != "" {
		return o.Name
	}
	return "Unknown"
}

// IDString returns the decimal option id, empty when unset.
func (o PicklistOption) IDString() string { return formatID(o.ID) }

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// ParseFields decodes a lead-fields response. The endpoint returns either a
// bare array or an object wrapping it under "data" or "content". Inactive
// fields are dropped.
func ParseFields(data []byte) ([]Field, error) {
	var list []Field
	if err := json.Unmarshal(data, &list); err == nil {
		return activeOnly(list), nil
	}
	var wrapped struct {
		Data    []Field `json:"data"`
		Content []Field `json:"content"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected lead fields response: %w", err)
	}
	if len(wrapped.Data) > 0 {
		return activeOnly(wrapped.Data), nil
	}
	return activeOnly(wrapped.Content), nil
}

func activeOnly(fields []Field) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.IsActive() {
			out = append(out, f)
		}
	}
	return out
}
