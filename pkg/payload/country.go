// Package payload turns agent-supplied lead field values into the payload
// shape the Kylas API accepts: dial codes folded to 2-letter country codes,
// scalar contact values lifted into typed collections with exactly one
// primary entry, and custom fields keyed by internal name.
package payload

import "strings"

// countryCodeMap folds the dial codes and country spellings agents actually
// send into the 2-letter codes the API stores.
var countryCodeMap = map[string]string{
	"+91": "IN", "IN": "IN", "in": "IN", "india": "IN",
	"+1": "US", "US": "US", "us": "US", "usa": "US",
	"GB": "GB", "+44": "GB", "UK": "GB",
}

// NormalizeCountryCode maps user-provided dial codes or country names to a
// 2-letter code. Unknown 2-letter codes pass through verbatim; anything else
// unknown yields "" so callers can insist on asking the user.
func NormalizeCountryCode(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	raw := trimmed
	if len(trimmed) <= 3 {
		raw = strings.ToUpper(trimmed)
	}
	if v, ok := countryCodeMap[raw]; ok {
		return v
	}
	if v, ok := countryCodeMap[code]; ok {
		return v
	}
	if len(raw) == 2 {
		return raw
	}
	return ""
}
