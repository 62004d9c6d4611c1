package schema

// FieldMeta is what search compilation needs to know about a filterable field.
type FieldMeta struct {
	Type     string
	Standard bool
}

// internalNamePicklists are the picklist fields whose search values are the
// option's internal name rather than its numeric id.
var internalNamePicklists = map[string]struct{}{
	"requirementCurrency": {},
	"companyBusinessType": {},
	"country":             {},
	"timezone":            {},
	"companyIndustry":     {},
}

// InternalNamePicklist reports whether the named picklist field is matched
// by option internal name instead of option id.
func InternalNamePicklist(name string) bool {
	_, ok := internalNamePicklists[name]
	return ok
}

// CustomIDToName maps decimal custom-field ids to internal names, letting
// agents address custom fields by the id shown in the cheat sheet. Fields
// without a name map to their own id string.
func CustomIDToName(fields []Field) map[string]string {
	out := make(map[string]string)
	for _, f := range fields {
		if f.Standard || f.ID == 0 {
			continue
		}
		id := f.IDString()
		if f.Name != "" {
			out[id] = f.Name
		} else {
			out[id] = id
		}
	}
	return out
}

// FilterableIndex maps field name (decimal id when the name is empty) to
// FieldMeta, covering only active filterable fields. The type defaults to
// TEXT_FIELD so unknown fields still get the most permissive text operators.
func FilterableIndex(fields []Field) map[string]FieldMeta {
	out := make(map[string]FieldMeta)
	for _, f := range fields {
		if !f.IsActive() || !f.Filterable {
			continue
		}
		key := f.Name
		if key == "" {
			key = f.IDString()
		}
		if key == "" {
			continue
		}
		typ := f.Type
		if typ == "" {
			typ = "TEXT_FIELD"
		}
		out[key] = FieldMeta{Type: typ, Standard: f.Standard}
	}
	return out
}
