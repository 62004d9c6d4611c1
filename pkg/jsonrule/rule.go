// Package jsonrule compiles agent-supplied filter clauses into the jsonRule
// query trees the Kylas search endpoints execute. Compilation is fail-fast:
// the first clause that does not validate against the tenant's filterable
// fields aborts with a message naming the clause's position, and nothing is
// emitted.
package jsonrule

// Clause is one declarative filter as an agent supplies it. Type is accepted
// for input compatibility but ignored; the schema decides the wire type.
type Clause struct {
	Field    string
	Operator string
	Value    any
	TimeZone string
	Type     string
}

// ClauseFromMap reads one filter object as decoded from tool arguments.
func ClauseFromMap(m map[string]any) Clause {
	c := Clause{Value: m["value"]}
	if s, ok := m["field"].(string); ok {
		c.Field = s
	}
	if s, ok := m["operator"].(string); ok {
		c.Operator = s
	}
	if s, ok := m["timeZone"].(string); ok {
		c.TimeZone = s
	}
	if s, ok := m["type"].(string); ok {
		c.Type = s
	}
	return c
}

// Rule is one compiled clause in wire form. RelatedFieldIDs marshals as an
// explicit null except for the pipeline-stage pairing; DependentFieldIDs and
// TimeZone appear only when set.
type Rule struct {
	Operator          string   `json:"operator"`
	ID                string   `json:"id"`
	Field             string   `json:"field"`
	Type              string   `json:"type"`
	Value             any      `json:"value"`
	RelatedFieldIDs   []string `json:"relatedFieldIds"`
	DependentFieldIDs []string `json:"dependentFieldIds,omitempty"`
	TimeZone          string   `json:"timeZone,omitempty"`
}

// Tree is the conjunctive rule group submitted to POST /search/lead. Every
// search is a flat AND; the API has no disjunction on this surface.
type Tree struct {
	Rules     []Rule `json:"rules"`
	Condition string `json:"condition"`
	Valid     bool   `json:"valid"`
}

// MultiFieldRule matches a term against every searchable column at once.
// It is the one rule shape that carries input and no relatedFieldIds.
type MultiFieldRule struct {
	ID       string `json:"id"`
	Field    string `json:"field"`
	Type     string `json:"type"`
	Input    string `json:"input"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// MultiFieldTree wraps a MultiFieldRule in the standard conjunctive group.
type MultiFieldTree struct {
	Rules     []MultiFieldRule `json:"rules"`
	Condition string           `json:"condition"`
	Valid     bool             `json:"valid"`
}

// NewMultiFieldTree builds the free-text rule tree for search-by-term. The
// term is expected to be trimmed and non-empty; callers enforce that.
func NewMultiFieldTree(term string) MultiFieldTree {
	return MultiFieldTree{
		Rules: []MultiFieldRule{{
			ID:       "multi_field",
			Field:    "multi_field",
			Type:     "multi_field",
			Input:    "multi_field",
			Operator: "multi_field",
			Value:    term,
		}},
		Condition: "AND",
		Valid:     true,
	}
}
