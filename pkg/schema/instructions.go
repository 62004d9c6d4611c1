package schema

import (
	"fmt"
	"strings"
)

// CheatSheet renders the field reference an agent reads before building
// payloads or filters: standard fields first, then custom, with per-field
// identifiers, required/filterable markers, and picklist options.
func CheatSheet(fields []Field) string {
	banner := strings.Repeat("=", 60)
	rule := strings.Repeat("-", 40)
	lines := []string{
		banner,
		"KYLAS CRM - LEAD FIELDS CHEAT SHEET",
		banner,
		"",
		"## STANDARD FIELDS",
		rule,
	}
	var custom []Field
	for _, f := range fields {
		if !f.Standard {
			custom = append(custom, f)
			continue
		}
		lines = append(lines, FormatField(f, true)...)
	}
	if len(custom) > 0 {
		lines = append(lines, "", "## CUSTOM FIELDS", rule)
		for _, f := range custom {
			lines = append(lines, FormatField(f, true)...)
		}
	}
	lines = append(lines, "", banner, "END OF CHEAT SHEET", banner)
	return strings.Join(lines, "\n")
}

// FormatField renders one field as cheat-sheet lines. Standard fields are
// identified by API name; custom fields by id plus the internal name used
// inside customFieldValues. Picklist options follow, keyed by internal name
// for the exception-set fields and by option id otherwise.
func FormatField(f Field, includeFilterable bool) []string {
	typ := f.Type
	if typ == "" {
		typ = "UNKNOWN"
	}
	prefix := "[CUSTOM]"
	identifier := fmt.Sprintf("Field ID: '%s', Internal Name for customFieldValues: '%s'", f.IDString(), f.Name)
	if f.Standard {
		prefix = "[STANDARD]"
		identifier = fmt.Sprintf("API Name: '%s'", f.Name)
	}
	line := fmt.Sprintf("%s '%s' (%s) - Type: %s", prefix, f.DisplayLabel(), identifier, typ)
	if f.Required {
		line += " *REQUIRED*"
	}
	if includeFilterable && f.Filterable {
		line += " [FILTERABLE]"
	}
	lines := []string{line}

	if (typ == "PICK_LIST" || typ == "MULTI_PICKLIST") && f.Picklist != nil && len(f.Picklist.Values) > 0 {
		useName := InternalNamePicklist(f.Name)
		if useName {
			lines = append(lines, "  └─ Options (use internal name in search)")
		} else {
			lines = append(lines, "  └─ Options (use ID in search):")
		}
		for _, opt := range f.Picklist.Values {
			if useName && opt.Name != "" {
				lines = append(lines, fmt.Sprintf("     • %s (internal name: '%s')", opt.DisplayLabel(), opt.Name))
			} else {
				lines = append(lines, fmt.Sprintf("     • %s (ID: %s)", opt.DisplayLabel(), opt.IDString()))
			}
		}
	}
	return lines
}
