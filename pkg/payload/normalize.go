package payload

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Dial-code errors are agent-facing sentences: tools hand them to the model
// verbatim, which relays the question to the user. A missing dial code must
// never be silently defaulted to any country.
var (
	errMissingDialCode = errors.New("Phone number(s) were provided but country/dial code was not. " +
		"Ask the user which country and dial code to use (e.g. India: IN or +91, US: US or +1) and include 'phone_country_code' in field_values.")
	errScalarMissingDialCode = errors.New("Phone number was provided but country/dial code was not. " +
		"Ask the user which country and dial code to use and include 'phone_country_code' in field_values.")
)

// Normalize builds a Kylas lead payload from agent-supplied field values.
//
//   - phone_country_code is consumed here, never forwarded.
//   - any phone data without a usable dial code is an error.
//   - an explicit customFieldValues map merges first; then all-digit keys
//     route into customFieldValues under their internal name via idToName
//     (falling back to the digit key itself).
//   - email / phone / phoneNumber scalars and emails / phoneNumbers lists go
//     through the contact-collection constructors.
//   - nil values are skipped; everything else passes through untouched.
//
// The input map is not modified.
func Normalize(fieldValues map[string]any, idToName map[string]string) (map[string]any, error) {
	fv := maps.Clone(fieldValues)
	if fv == nil {
		fv = map[string]any{}
	}
	payload := make(map[string]any)
	custom := make(map[string]any)

	var rawCode string
	if v, ok := fv["phone_country_code"]; ok && v != nil {
		rawCode = fmt.Sprint(v)
	}
	delete(fv, "phone_country_code")
	phoneCountry := NormalizeCountryCode(rawCode)

	hasPhoneData := truthy(fv["phone"]) || truthy(fv["phoneNumber"]) || nonEmptyList(fv["phoneNumbers"])
	if hasPhoneData && phoneCountry == "" {
		return nil, errMissingDialCode
	}

	if cf, ok := fv["customFieldValues"]; ok {
		delete(fv, "customFieldValues")
		if m, ok := cf.(map[string]any); ok {
			for k, v := range m {
				if v != nil {
					custom[k] = v
				}
			}
		}
	}

	// Sorted key order keeps the email/emails and phone/phoneNumbers
	// collisions deterministic: the list form wins over the scalar form.
	for _, key := range slices.Sorted(maps.Keys(fv)) {
		value := fv[key]
		if value == nil {
			continue
		}
		switch {
		case isDigits(key):
			customKey := key
			if name, ok := idToName[key]; ok && name != "" {
				customKey = name
			}
			custom[customKey] = value
		case key == "email":
			if s, ok := value.(string); ok {
				payload["emails"] = SingleEmail(s)
			} else {
				payload[key] = value
			}
		case key == "phone" || key == "phoneNumber":
			if s, ok := value.(string); ok {
				if phoneCountry == "" {
					return nil, errScalarMissingDialCode
				}
				payload["phoneNumbers"] = SinglePhone(s, phoneCountry)
			} else {
				payload[key] = value
			}
		case key == "emails":
			payload["emails"] = EmailList(value)
		case key == "phoneNumbers":
			payload["phoneNumbers"] = PhoneList(value, phoneCountry)
		default:
			payload[key] = value
		}
	}

	if len(custom) > 0 {
		payload["customFieldValues"] = custom
	}
	return payload, nil
}

// HasDigitKeys reports whether any top-level key outside customFieldValues
// is an all-digit field id. Callers use it to skip the id-to-name fetch when
// nothing needs resolving.
func HasDigitKeys(fieldValues map[string]any) bool {
	for k := range fieldValues {
		if k != "customFieldValues" && isDigits(k) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func nonEmptyList(v any) bool {
	l, ok := v.([]any)
	return ok && len(l) > 0
}

// truthy mirrors the loose presence checks JSON-decoded values need: empty
// strings, zero numbers, false, and empty collections all count as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
