package jsonrule

import (
	"strings"
	"testing"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/schema"
)

func testIndex() map[string]schema.FieldMeta {
	return map[string]schema.FieldMeta{
		"firstName":               {Type: "TEXT_FIELD", Standard: true},
		"country":                 {Type: "PICK_LIST", Standard: true},
		"source":                  {Type: "PICK_LIST", Standard: true},
		"createdAt":               {Type: "DATETIME_PICKER", Standard: true},
		"convertedAt":             {Type: "DATETIME_PICKER", Standard: true},
		"createdBy":               {Type: "LOOK_UP", Standard: true},
		"pipeline":                {Type: "PIPELINE", Standard: true},
		"pipelineStage":           {Type: "PIPELINE_STAGE", Standard: true},
		"updatedAt":               {Type: "DATETIME_PICKER", Standard: true},
		"latestActivityCreatedAt": {Type: "DATETIME_PICKER", Standard: true},
		"cfDateField":             {Type: "DATETIME_PICKER", Standard: false},
		"cfFruits":                {Type: "MULTI_PICKLIST", Standard: false},
		"cfFlower":                {Type: "PICK_LIST", Standard: false},
	}
}

func TestCompileRuleTypes(t *testing.T) {
	tree, err := Compile([]Clause{
		{Field: "firstName", Operator: "equal", Value: "Akshay"},
		{Field: "country", Operator: "equal", Value: "AF"},
		{Field: "source", Operator: "equal", Value: 16136},
	}, testIndex(), "")
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if tree.Condition != "AND" || !tree.Valid {
		t.Fatalf("tree envelope = %+v", tree)
	}
	if len(tree.Rules) != 3 {
		t.Fatalf("got %d rules, want 3", len(tree.Rules))
	}
	if r := tree.Rules[0]; r.Field != "firstName" || r.Type != "string" || r.Value != "Akshay" {
		t.Fatalf("rule 0 = %+v", r)
	}
	// country is matched by option internal name, not option id.
	if r := tree.Rules[1]; r.Field != "country" || r.Type != "string" || r.Value != "AF" {
		t.Fatalf("rule 1 = %+v", r)
	}
	if r := tree.Rules[2]; r.Field != "source" || r.Type != "long" || r.Value != 16136 {
		t.Fatalf("rule 2 = %+v", r)
	}
}

func TestCompileDateRules(t *testing.T) {
	t.Run("relative operator gets default timezone", func(t *testing.T) {
		tree, err := Compile([]Clause{{Field: "createdAt", Operator: "today"}}, testIndex(), "")
		if err != nil {
			t.Fatalf("Compile error: %v", err)
		}
		r := tree.Rules[0]
		if r.Type != "date" || r.Value != nil || r.TimeZone != "Asia/Calcutta" {
			t.Fatalf("rule = %+v", r)
		}
	})

	t.Run("caller default wins over package default", func(t *testing.T) {
		tree, err := Compile([]Clause{{Field: "createdAt", Operator: "is_not_null"}}, testIndex(), "America/New_York")
		if err != nil {
			t.Fatalf("Compile error: %v", err)
		}
		if tz := tree.Rules[0].TimeZone; tz != "America/New_York" {
			t.Fatalf("timeZone = %q", tz)
		}
	})

	t.Run("between keeps range and clause timezone", func(t *testing.T) {
		value := []any{"2026-02-01T10:00:00.000Z", "2026-02-06T10:00:00.000Z"}
		tree, err := Compile([]Clause{{
			Field:    "createdAt",
			Operator: "between",
			Value:    value,
			TimeZone: "Asia/Calcutta",
		}}, testIndex(), "America/New_York")
		if err != nil {
			t.Fatalf("Compile error: %v", err)
		}
		r := tree.Rules[0]
		if r.Type != "date" || r.TimeZone != "Asia/Calcutta" {
			t.Fatalf("rule = %+v", r)
		}
		got, ok := r.Value.([]any)
		if !ok || len(got) != 2 || got[0] != value[0] || got[1] != value[1] {
			t.Fatalf("value = %v", r.Value)
		}
	})
}

func TestCompileCustomFieldPaths(t *testing.T) {
	tree, err := Compile([]Clause{
		{Field: "cfDateField", Operator: "greater_or_equal", Value: "2026-02-02T18:30:00.000Z", TimeZone: "Asia/Calcutta"},
		{Field: "cfFruits", Operator: "equal", Value: 2797122},
		{Field: "cfFlower", Operator: "equal", Value: 2797126},
	}, testIndex(), "")
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if r := tree.Rules[0]; r.ID != "cfDateField" || r.Field != "customFieldValues.cfDateField" || r.Type != "date" || r.TimeZone != "Asia/Calcutta" {
		t.Fatalf("rule 0 = %+v", r)
	}
	if r := tree.Rules[1]; r.Field != "customFieldValues.cfFruits" || r.Type != "long" || r.Value != 2797122 {
		t.Fatalf("rule 1 = %+v", r)
	}
	if r := tree.Rules[2]; r.Field != "customFieldValues.cfFlower" || r.Type != "long" || r.Value != 2797126 {
		t.Fatalf("rule 2 = %+v", r)
	}
}

func TestCompileLookUpIsLong(t *testing.T) {
	tree, err := Compile([]Clause{{Field: "createdBy", Operator: "equal", Value: 59867}}, testIndex(), "")
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if r := tree.Rules[0]; r.Type != "long" || r.Value != 59867 || r.Field != "createdBy" {
		t.Fatalf("rule = %+v", r)
	}
}

func TestCompileCoercesLongStrings(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{name: "numeric string", value: "59867", want: 59867},
		{name: "padded numeric string", value: " 42 ", want: 42},
		{name: "non-numeric string kept", value: "abc", want: "abc"},
		{name: "float kept", value: 3.5, want: 3.5},
		{name: "bool kept", value: true, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Compile([]Clause{{Field: "createdBy", Operator: "equal", Value: tt.value}}, testIndex(), "")
			if err != nil {
				t.Fatalf("Compile error: %v", err)
			}
			if got := tree.Rules[0].Value; got != tt.want {
				t.Fatalf("value = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}

	// List values pass through for the in operator.
	tree, err := Compile([]Clause{{Field: "createdBy", Operator: "in", Value: []any{59867, 59878}}}, testIndex(), "")
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if got, ok := tree.Rules[0].Value.([]any); !ok || len(got) != 2 {
		t.Fatalf("value = %v", tree.Rules[0].Value)
	}
}

func TestCompileOperatorNormalization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "equal"},
		{" EQUAL ", "equal"},
		{"Greater Or Equal", "greater_or_equal"},
	}
	for _, tt := range tests {
		clauses := []Clause{{Field: "createdBy", Operator: tt.in, Value: 1}}
		if tt.want == "greater_or_equal" {
			clauses[0].Field = "createdAt"
		}
		tree, err := Compile(clauses, testIndex(), "")
		if err != nil {
			t.Fatalf("Compile(%q) error: %v", tt.in, err)
		}
		if got := tree.Rules[0].Operator; got != tt.want {
			t.Fatalf("operator %q normalized to %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompilePipelineLinkage(t *testing.T) {
	tree, err := Compile([]Clause{
		{Field: "pipeline", Operator: "equal", Value: 100},
		{Field: "pipelineStage", Operator: "in", Value: []any{1, 2}},
	}, testIndex(), "")
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	p := tree.Rules[0]
	if len(p.DependentFieldIDs) != 2 || p.DependentFieldIDs[0] != "pipelineStage" || p.DependentFieldIDs[1] != "pipelineStageReason" {
		t.Fatalf("pipeline rule = %+v", p)
	}
	if p.RelatedFieldIDs != nil {
		t.Fatalf("pipeline relatedFieldIds = %v, want null", p.RelatedFieldIDs)
	}
	s := tree.Rules[1]
	if len(s.RelatedFieldIDs) != 1 || s.RelatedFieldIDs[0] != "pipeline" {
		t.Fatalf("pipelineStage rule = %+v", s)
	}
	if s.DependentFieldIDs != nil {
		t.Fatalf("pipelineStage dependentFieldIds = %v, want absent", s.DependentFieldIDs)
	}
}

func TestCompileFailFast(t *testing.T) {
	tests := []struct {
		name    string
		clauses []Clause
		wantErr string
	}{
		{
			name:    "missing field",
			clauses: []Clause{{Operator: "equal", Value: "x"}},
			wantErr: "Filter #1: missing 'field'.",
		},
		{
			name:    "unknown field",
			clauses: []Clause{{Field: "unknownField", Operator: "equal", Value: "x"}},
			wantErr: "Filter #1: field 'unknownField' is not filterable or not found. Use only [FILTERABLE] fields from get_lead_field_instructions.",
		},
		{
			name: "second clause reports its position",
			clauses: []Clause{
				{Field: "firstName", Operator: "equal", Value: "A"},
				{Field: "nope", Operator: "equal", Value: "x"},
			},
			wantErr: "Filter #2:",
		},
		{
			name:    "disallowed operator",
			clauses: []Clause{{Field: "createdAt", Operator: "contains", Value: "x"}},
			wantErr: "Filter #1: operator 'contains' not allowed for field 'createdAt' (type DATETIME_PICKER). Allowed: ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Compile(tt.clauses, testIndex(), "")
			if err == nil {
				t.Fatalf("Compile succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %q, want it to contain %q", err, tt.wantErr)
			}
			if len(tree.Rules) != 0 {
				t.Fatalf("failed compile still emitted rules: %+v", tree)
			}
		})
	}
}

func TestAllowedOperatorsFallback(t *testing.T) {
	got := AllowedOperators("SOMETHING_NEW")
	want := AllowedOperators("TEXT_FIELD")
	if len(got) != len(want) {
		t.Fatalf("fallback = %v, want text set %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fallback[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
