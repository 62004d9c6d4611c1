package payload

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Allowed entry types per collection; the first doubles as the default.
var (
	emailTypes = []string{"OFFICE", "PERSONAL"}
	phoneTypes = []string{"MOBILE", "WORK", "HOME", "PERSONAL"}
)

// These constructors are the only producers of the emails and phoneNumbers
// payload keys, so every collection leaving this package has its entry types
// clamped to the allowed set and exactly one primary entry.

// SingleEmail builds the emails collection for a scalar address.
func SingleEmail(address string) []map[string]any {
	return ensureSinglePrimary([]map[string]any{
		{"type": "OFFICE", "value": strings.TrimSpace(address), "primary": true},
	}, emailTypes, "OFFICE")
}

// EmailList normalizes a caller-supplied emails list. Anything that is not a
// list collapses to an empty collection rather than passing through unchecked.
func EmailList(value any) []map[string]any {
	entries, _ := value.([]any)
	out := make([]map[string]any, 0, len(entries))
	for _, raw := range entries {
		if m, ok := raw.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return ensureSinglePrimary(out, emailTypes, "OFFICE")
}

// SinglePhone builds the phoneNumbers collection for a scalar number. The
// caller is responsible for refusing to call this without a country code.
func SinglePhone(number, code string) []map[string]any {
	return ensureSinglePrimary([]map[string]any{
		{"type": "MOBILE", "code": code, "value": strings.TrimSpace(number), "primary": true},
	}, phoneTypes, "MOBILE")
}

// PhoneList normalizes a caller-supplied phoneNumbers list. Entries missing
// a code inherit defaultCode; codes longer than 2 characters are folded to
// 2-letter form when recognized and kept verbatim otherwise.
func PhoneList(value any, defaultCode string) []map[string]any {
	entries, _ := value.([]any)
	phones := make([]map[string]any, 0, len(entries))
	for _, raw := range entries {
		p, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		entry := maps.Clone(p)
		if !truthy(entry["code"]) {
			entry["code"] = defaultCode
		} else if code := fmt.Sprint(entry["code"]); len(code) > 2 {
			if normalized := NormalizeCountryCode(code); normalized != "" {
				entry["code"] = normalized
			}
		}
		phones = append(phones, entry)
	}
	return ensureSinglePrimary(phones, phoneTypes, "MOBILE")
}

// ensureSinglePrimary clamps entry types to the allowed set and makes the
// first user-flagged entry (else the first entry) the sole primary.
func ensureSinglePrimary(entries []map[string]any, allowed []string, defaultType string) []map[string]any {
	if entries == nil {
		entries = []map[string]any{}
	}
	result := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		if len(e) == 0 {
			continue
		}
		entry := maps.Clone(e)
		t, _ := entry["type"].(string)
		if t == "" {
			t = defaultType
		} else {
			t = strings.ToUpper(t)
		}
		if !slices.Contains(allowed, t) {
			t = defaultType
		}
		entry["type"] = t
		result = append(result, entry)
	}
	primaryIdx := 0
	for i, entry := range result {
		if truthy(entry["primary"]) {
			primaryIdx = i
			break
		}
	}
	for i, entry := range result {
		entry["primary"] = i == primaryIdx
	}
	return result
}
