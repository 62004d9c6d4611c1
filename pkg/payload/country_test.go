package payload

import "testing"

func TestNormalizeCountryCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+91", "IN"},
		{"IN", "IN"},
		{"in", "IN"},
		{"india", "IN"},
		{"+1", "US"},
		{"us", "US"},
		{"usa", "US"},
		{"USA", ""},
		{"GB", "GB"},
		{"+44", "GB"},
		{"UK", "GB"},
		{"uk", "GB"},
		{"DE", "DE"},
		{"de", "DE"},
		{" IN ", "IN"},
		{"INDIA", ""},
		{"Germany", ""},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeCountryCode(tt.in); got != tt.want {
				t.Fatalf("NormalizeCountryCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
