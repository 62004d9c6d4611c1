package kylas

import "testing"

func TestParsePage(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantLen   int
		wantTotal int
		wantPages int
	}{
		{
			name:      "content with totals",
			body:      `{"content":[{"id":1},{"id":2}],"totalElements":7,"totalPages":4}`,
			wantLen:   2,
			wantTotal: 7,
			wantPages: 4,
		},
		{
			name:      "data fallback with total",
			body:      `{"data":[{"id":1}],"total":3}`,
			wantLen:   1,
			wantTotal: 3,
			wantPages: 1,
		},
		{
			name:      "empty content wins over data",
			body:      `{"content":[],"data":[{"id":1}]}`,
			wantLen:   0,
			wantTotal: 0,
			wantPages: 1,
		},
		{
			name:      "totalElements wins over total",
			body:      `{"content":[{"id":1}],"totalElements":10,"total":99}`,
			wantLen:   1,
			wantTotal: 10,
			wantPages: 1,
		},
		{
			name:      "bare object defaults",
			body:      `{}`,
			wantLen:   0,
			wantTotal: 0,
			wantPages: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := parsePage("test", []byte(tt.body))
			if err != nil {
				t.Fatalf("parsePage: %v", err)
			}
			if len(page.Content) != tt.wantLen {
				t.Errorf("len(Content) = %d, want %d", len(page.Content), tt.wantLen)
			}
			if page.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", page.Total, tt.wantTotal)
			}
			if page.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", page.TotalPages, tt.wantPages)
			}
		})
	}
}

func TestParsePageRejectsGarbage(t *testing.T) {
	if _, err := parsePage("test", []byte("not json")); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}
