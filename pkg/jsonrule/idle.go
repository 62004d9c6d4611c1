package jsonrule

import (
	"errors"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/schema"
	"github.com/kylastech/kylas-crm-mcp-server/pkg/shared/timeutil"
)

// idleFields are the two timestamp attributes that prove activity, checked
// in order.
var idleFields = []string{"updatedAt", "latestActivityCreatedAt"}

var errNoIdleFields = errors.New("Neither 'updatedAt' nor 'latestActivityCreatedAt' is filterable for this tenant. Check get_lead_field_instructions.")

// IdleClauses expresses "no activity in the last days days" as a
// less-or-equal clause per filterable timestamp attribute, all sharing one
// threshold. The engine cannot compare max(A, B) directly, but A <= t AND
// B <= t is the same predicate. An empty result is a tenant-configuration
// error, never a silent match-everything.
func IdleClauses(days int, tz string, index map[string]schema.FieldMeta) ([]Clause, error) {
	threshold := timeutil.IdleThreshold(days, tz)
	clauses := make([]Clause, 0, len(idleFields))
	for _, name := range idleFields {
		if _, ok := index[name]; !ok {
			continue
		}
		clauses = append(clauses, Clause{
			Field:    name,
			Operator: "less_or_equal",
			Value:    threshold,
			TimeZone: tz,
		})
	}
	if len(clauses) == 0 {
		return nil, errNoIdleFields
	}
	return clauses, nil
}
