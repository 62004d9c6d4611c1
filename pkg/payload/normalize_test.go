package payload

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeStandardOnly(t *testing.T) {
	got, err := Normalize(map[string]any{"firstName": "John", "lastName": "Doe"}, nil)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if got["firstName"] != "John" || got["lastName"] != "Doe" {
		t.Fatalf("payload = %v", got)
	}
	if _, ok := got["customFieldValues"]; ok {
		t.Fatalf("unexpected customFieldValues: %v", got)
	}
}

func TestNormalizeEmailString(t *testing.T) {
	got, err := Normalize(map[string]any{"firstName": "John", "email": " john@example.com "}, nil)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	want := []map[string]any{{"type": "OFFICE", "value": "john@example.com", "primary": true}}
	if !reflect.DeepEqual(got["emails"], want) {
		t.Fatalf("emails = %v, want %v", got["emails"], want)
	}
	if _, ok := got["email"]; ok {
		t.Fatalf("scalar email key survived: %v", got)
	}
}

func TestNormalizePhoneString(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		wantCode string
	}{
		{name: "dial code", code: "+1", wantCode: "US"},
		{name: "country code", code: "IN", wantCode: "IN"},
		{name: "dial code india", code: "+91", wantCode: "IN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(map[string]any{"firstName": "Jane", "phone": "5551234567", "phone_country_code": tt.code}, nil)
			if err != nil {
				t.Fatalf("Normalize error: %v", err)
			}
			want := []map[string]any{{"type": "MOBILE", "code": tt.wantCode, "value": "5551234567", "primary": true}}
			if !reflect.DeepEqual(got["phoneNumbers"], want) {
				t.Fatalf("phoneNumbers = %v, want %v", got["phoneNumbers"], want)
			}
		})
	}
}

func TestNormalizePhoneRequiresDialCode(t *testing.T) {
	tests := []struct {
		name string
		fv   map[string]any
	}{
		{name: "scalar phone", fv: map[string]any{"firstName": "Jane", "phone": "8830311640"}},
		{name: "scalar phoneNumber", fv: map[string]any{"phoneNumber": "8830311640"}},
		{
			// Entry-level codes are not enough: the top-level code proves the
			// user was asked rather than a country assumed.
			name: "list with entry codes",
			fv: map[string]any{
				"phoneNumbers": []any{map[string]any{"type": "MOBILE", "code": "IN", "value": "7447631718", "primary": true}},
			},
		},
		{name: "unusable code", fv: map[string]any{"phone": "123", "phone_country_code": "XYZQ"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.fv, nil)
			if err == nil {
				t.Fatalf("Normalize succeeded, want dial-code error")
			}
			if !strings.Contains(err.Error(), "country") || !strings.Contains(err.Error(), "dial code") {
				t.Fatalf("error = %q, want country/dial code wording", err)
			}
		})
	}
}

func TestNormalizeEmptyPhoneStringStillNeedsCode(t *testing.T) {
	// An empty phone string slips past the presence check but must still
	// refuse to build an entry without a dial code.
	_, err := Normalize(map[string]any{"phone": ""}, nil)
	if err == nil {
		t.Fatalf("Normalize succeeded, want dial-code error")
	}
	if !strings.Contains(err.Error(), "Phone number was provided") {
		t.Fatalf("error = %q", err)
	}
}

func TestNormalizeEmailsKeepExplicitPrimary(t *testing.T) {
	fv := map[string]any{"emails": []any{
		map[string]any{"type": "OFFICE", "value": "a@k.io", "primary": true},
		map[string]any{"type": "PERSONAL", "value": "b@gmail.com", "primary": false},
	}}
	got, err := Normalize(fv, nil)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	emails := got["emails"].([]map[string]any)
	if len(emails) != 2 {
		t.Fatalf("emails = %v", emails)
	}
	if emails[0]["primary"] != true || emails[1]["primary"] != false {
		t.Fatalf("primary flags = %v, %v", emails[0]["primary"], emails[1]["primary"])
	}
}

func TestNormalizePhoneNumbersList(t *testing.T) {
	fv := map[string]any{
		"phone_country_code": "IN",
		"phoneNumbers": []any{
			map[string]any{"type": "MOBILE", "code": "IN", "value": "9090909090", "primary": true},
			map[string]any{"type": "WORK", "code": "US", "value": "4155550132", "primary": false},
			map[string]any{"type": "HOME", "value": "020123456"},
			map[string]any{"type": "WORK", "code": "+91", "value": "9800000000"},
		},
	}
	got, err := Normalize(fv, nil)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	phones := got["phoneNumbers"].([]map[string]any)
	if len(phones) != 4 {
		t.Fatalf("phones = %v", phones)
	}
	if phones[0]["primary"] != true || phones[1]["primary"] != false || phones[3]["primary"] != false {
		t.Fatalf("primary flags wrong: %v", phones)
	}
	if phones[2]["code"] != "IN" {
		t.Fatalf("missing code not inherited: %v", phones[2])
	}
	if phones[3]["code"] != "IN" {
		t.Fatalf("dial code not folded: %v", phones[3])
	}
}

func TestNormalizeCustomDigitKeys(t *testing.T) {
	got, err := Normalize(map[string]any{"firstName": "John", "57256": 12345, "57300": "Enterprise"}, nil)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	custom := got["customFieldValues"].(map[string]any)
	if custom["57256"] != 12345 || custom["57300"] != "Enterprise" {
		t.Fatalf("customFieldValues = %v", custom)
	}
	if _, ok := got["57256"]; ok {
		t.Fatalf("digit key survived at top level: %v", got)
	}
}

func TestNormalizeCustomIDResolvedToName(t *testing.T) {
	fv := map[string]any{"firstName": "shubham", "lastName": "dadas", "companyName": "kylas", "1210985": "Checked"}
	got, err := Normalize(fv, map[string]string{"1210985": "cfLeadCheck"})
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	custom := got["customFieldValues"].(map[string]any)
	if custom["cfLeadCheck"] != "Checked" {
		t.Fatalf("customFieldValues = %v", custom)
	}
	if _, ok := custom["1210985"]; ok {
		t.Fatalf("raw id key kept alongside name: %v", custom)
	}
}

func TestNormalizeExplicitCustomFieldValues(t *testing.T) {
	fv := map[string]any{
		"firstName":         "Abhinav",
		"customFieldValues": map[string]any{"cfLeadCheck": "Checked", "cfEmpty": nil},
	}
	got, err := Normalize(fv, nil)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	custom := got["customFieldValues"].(map[string]any)
	if custom["cfLeadCheck"] != "Checked" {
		t.Fatalf("customFieldValues = %v", custom)
	}
	if _, ok := custom["cfEmpty"]; ok {
		t.Fatalf("nil custom value kept: %v", custom)
	}
}

func TestNormalizePassthroughAndNilSkip(t *testing.T) {
	got, err := Normalize(map[string]any{"leadSource": 1001, "companyName": nil}, nil)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if got["leadSource"] != 1001 {
		t.Fatalf("leadSource = %v", got["leadSource"])
	}
	if _, ok := got["companyName"]; ok {
		t.Fatalf("nil value kept: %v", got)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	fv := map[string]any{"phone": "123", "phone_country_code": "IN"}
	if _, err := Normalize(fv, nil); err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if _, ok := fv["phone_country_code"]; !ok {
		t.Fatalf("input map was mutated: %v", fv)
	}
}

func TestHasDigitKeys(t *testing.T) {
	if !HasDigitKeys(map[string]any{"firstName": "A", "57256": 1}) {
		t.Fatalf("HasDigitKeys missed digit key")
	}
	if HasDigitKeys(map[string]any{"firstName": "A", "customFieldValues": map[string]any{"1": 2}}) {
		t.Fatalf("HasDigitKeys counted customFieldValues")
	}
	if HasDigitKeys(nil) {
		t.Fatalf("HasDigitKeys on nil")
	}
}
