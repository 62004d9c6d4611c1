package jsonrule

// dateOperators is the shared whitelist for the three date-like field types:
// ordering and range operators plus the relative-period shortcuts the search
// engine evaluates server-side.
var dateOperators = []string{
	"greater", "greater_or_equal", "less", "less_or_equal", "between", "not_between",
	"is_not_null", "is_null",
	"today", "yesterday", "tomorrow",
	"last_seven_days", "next_seven_days", "last_fifteen_days", "next_fifteen_days",
	"last_thirty_days", "next_thirty_days",
	"week_to_date", "current_week", "last_week", "next_week",
	"month_to_date", "current_month", "last_month", "next_month",
	"quarter_to_date", "current_quarter", "last_quarter", "next_quarter",
	"year_to_date", "current_year", "last_year", "next_year",
	"before_current_date_and_time", "after_current_date_and_time",
}

var textOperators = []string{
	"equal", "not_equal", "contains", "not_contains", "in", "not_in",
	"is_empty", "is_not_empty", "begins_with",
}

var selectOperators = []string{
	"equal", "not_equal", "is_not_null", "is_null", "in", "not_in",
}

// operatorsByType whitelists search operators per schema field type.
var operatorsByType = map[string][]string{
	"TEXT_FIELD":     textOperators,
	"PARAGRAPH_TEXT": textOperators,
	"URL":            textOperators,
	"EMAIL":          textOperators,
	"PHONE":          textOperators,
	"NUMBER": {
		"equal", "not_equal", "greater", "greater_or_equal", "less", "less_or_equal",
		"between", "not_between", "in", "not_in", "is_null", "is_not_null",
	},
	"CHECKBOX":        {"equal", "not_equal"},
	"TOGGLE":          {"equal", "not_equal"},
	"PICK_LIST":       selectOperators,
	"MULTI_PICKLIST":  selectOperators,
	"LOOK_UP":         selectOperators,
	"PIPELINE":        selectOperators,
	"ENTITY_FIELDS":   {"equal", "not_equal", "in", "not_in", "is_not_null", "is_null"},
	"FORECASTING_TYPE": {
		"equal", "not_equal", "in", "not_in", "is_empty", "is_not_empty",
	},
	"PIPELINE_STAGE":  {"equal", "not_equal", "in", "not_in"},
	"DATETIME_PICKER": dateOperators,
	"DATE":            dateOperators,
	"DATE_PICKER":     dateOperators,
}

// AllowedOperators returns the whitelist for a schema field type, falling
// back to the text set for types the table does not know.
func AllowedOperators(fieldType string) []string {
	if ops, ok := operatorsByType[fieldType]; ok {
		return ops
	}
	return operatorsByType["TEXT_FIELD"]
}

// IsDateType reports whether a schema field type carries date or datetime
// values, and so needs a timeZone on its search rules.
func IsDateType(fieldType string) bool {
	switch fieldType {
	case "DATETIME_PICKER", "DATE", "DATE_PICKER":
		return true
	}
	return false
}
