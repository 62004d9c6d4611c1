package jsonrule

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/schema"
	"github.com/kylastech/kylas-crm-mcp-server/pkg/shared/timeutil"
)

// Compile validates each clause against the tenant's filterable fields and
// assembles the conjunctive rule tree for POST /search/lead. defaultTZ is
// applied to date rules whose clause has no timezone of its own; when empty,
// the package default stands in.
//
// Error messages are agent-facing and name the 1-based clause position, so
// the model can fix the offending filter and retry.
func Compile(clauses []Clause, index map[string]schema.FieldMeta, defaultTZ string) (Tree, error) {
	tzForDate := defaultTZ
	if tzForDate == "" {
		tzForDate = timeutil.DefaultTimezone
	}
	rules := make([]Rule, 0, len(clauses))
	for i, c := range clauses {
		operator := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c.Operator)), " ", "_")
		if operator == "" {
			operator = "equal"
		}
		if c.Field == "" {
			return Tree{}, fmt.Errorf("Filter #%d: missing 'field'.", i+1)
		}
		meta, ok := index[c.Field]
		if !ok {
			return Tree{}, fmt.Errorf("Filter #%d: field '%s' is not filterable or not found. Use only [FILTERABLE] fields from get_lead_field_instructions.", i+1, c.Field)
		}
		apiType := meta.Type
		if apiType == "" {
			apiType = "TEXT_FIELD"
		}
		allowed := AllowedOperators(apiType)
		if !slices.Contains(allowed, operator) {
			return Tree{}, fmt.Errorf("Filter #%d: operator '%s' not allowed for field '%s' (type %s). Allowed: %s.", i+1, operator, c.Field, apiType, strings.Join(allowed, ", "))
		}

		ruleType := ruleTypeFor(apiType, c.Field)
		value := c.Value
		if ruleType == "long" && value != nil {
			value = coerceLong(value)
		}

		// The query engine addresses custom attributes through the
		// customFieldValues path; standard columns by bare name.
		ruleField := c.Field
		if !meta.Standard {
			ruleField = "customFieldValues." + c.Field
		}

		rule := Rule{
			Operator: operator,
			ID:       c.Field,
			Field:    ruleField,
			Type:     ruleType,
			Value:    value,
		}
		// Pipeline and stage clauses must declare their structural link for
		// the lead search to resolve them.
		switch c.Field {
		case "pipeline":
			rule.DependentFieldIDs = []string{"pipelineStage", "pipelineStageReason"}
		case "pipelineStage":
			rule.RelatedFieldIDs = []string{"pipeline"}
		}
		// Date values stay in the caller's timezone; the engine interprets
		// them through timeZone. Converting here would double-shift.
		if ruleType == "date" {
			rule.TimeZone = c.TimeZone
			if rule.TimeZone == "" {
				rule.TimeZone = tzForDate
			}
		}
		rules = append(rules, rule)
	}
	return Tree{Rules: rules, Condition: "AND", Valid: true}, nil
}

// ruleTypeFor maps a schema field type to the wire value-kind tag. Picklists
// resolve to string when the field matches by option internal name, long
// otherwise; user and entity references carry numeric ids.
func ruleTypeFor(fieldType, fieldName string) string {
	switch fieldType {
	case "PICK_LIST", "MULTI_PICKLIST":
		if schema.InternalNamePicklist(fieldName) {
			return "string"
		}
		return "long"
	case "NUMBER", "LOOK_UP", "ENTITY_FIELDS":
		return "long"
	}
	if IsDateType(fieldType) {
		return "date"
	}
	return "string"
}

// coerceLong converts string values to integers where possible and keeps the
// original value otherwise, letting the API reject it with a better message
// than this layer could produce. Numbers, bools, and lists pass untouched.
func coerceLong(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return value
	}
	return n
}
