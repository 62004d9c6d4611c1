package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/jsonrule"
	"github.com/kylastech/kylas-crm-mcp-server/pkg/kylas"
	"github.com/kylastech/kylas-crm-mcp-server/pkg/schema"
)

// SearchLeadsTool definition.
var SearchLeadsTool = &Tool{
	Tool: mcp.Tool{
		Name: "search_leads",
		Description: "Search/filter leads. Only fields marked [FILTERABLE] in get_lead_field_instructions can be used. " +
			"Call get_lead_field_instructions first to get filterable fields and their types.\n" +
			"For user look-up fields (createdBy, updatedBy, convertedBy, ownerId, importedBy): value must be user ID (number). Call lookup_users first.\n" +
			"For the products field: value must be product ID (number). Call lookup_products first; if multiple matches, ask which product, then use that ID here.\n" +
			"For pipeline / pipelineStage (e.g. open leads, closed leads): call lookup_pipelines first, ask the user to confirm which pipeline, then call get_pipeline_stages for that pipeline only; if stage is ambiguous ask which stage, then use pipeline + pipelineStage filters here.\n" +
			"Operators by type (examples): TEXT_FIELD: equal, contains, is_empty. NUMBER: equal, greater, between, is_null. PICK_LIST: equal, in, is_null. DATETIME_PICKER: today, yesterday, between, is_not_null, greater, less, current_week, etc.",
		Annotations: &mcp.ToolAnnotations{Title: "Search Leads"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"filters": map[string]any{
					"type": "array",
					"description": "List of filter objects. Each must have:\n" +
						"- field (string): Field internal/API name (e.g. firstName, country, source, createdAt).\n" +
						"- operator (string): One of the allowed operators for that field type (e.g. equal, contains, greater).\n" +
						"- value: Value to compare. For PICK_LIST/MULTI_PICKLIST use Option ID (number), except requirementCurrency, companyBusinessType, country, timezone, companyIndustry: use internal name (string). " +
						"For date/datetime (incl. custom e.g. cfDateField): value null for today/is_null/is_not_null; single ISO string for greater/greater_or_equal/less/less_or_equal e.g. \"2026-02-02T18:30:00.000Z\"; for between use [startISO, endISO].\n" +
						"- timeZone (string, optional): For date/datetime filters only; default from server or env.\n" +
						"- type (string, optional): Field type from cheat sheet. If omitted, inferred from schema.",
					"items": map[string]any{"type": "object"},
				},
				"page": map[string]any{
					"type":        "number",
					"description": "0-based page (default 0).",
				},
				"size": map[string]any{
					"type":        "number",
					"description": "Page size, max 100 (default 20).",
				},
				"sort": map[string]any{
					"type":        "string",
					"description": "Sort e.g. \"createdAt,desc\" (default).",
				},
			},
			"required": []string{"filters"},
		},
	},
	Group: GroupRead,
}

// SearchLeadsByTermTool definition.
var SearchLeadsByTermTool = &Tool{
	Tool: mcp.Tool{
		Name: "search_leads_by_term",
		Description: "Search leads by a single term across multiple fields (firstName, lastName, companyName, phoneNumbers, emails, etc.). " +
			"Use this when the user asks for \"leads with X\", \"leads containing Y\", or \"leads named Z\" without specifying which field to filter on. " +
			"For filtering by a specific field (e.g. \"leads where phone number is X\"), use search_leads instead.",
		Annotations: &mcp.ToolAnnotations{Title: "Search Leads By Term"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"search_term": map[string]any{
					"type":        "string",
					"description": "The term to search for (e.g. \"akshay\", \"acme\").",
				},
				"page": map[string]any{
					"type":        "number",
					"description": "0-based page (default 0).",
				},
				"size": map[string]any{
					"type":        "number",
					"description": "Page size, max 100 (default 20).",
				},
				"sort": map[string]any{
					"type":        "string",
					"description": "Sort e.g. \"updatedAt,desc\" (default).",
				},
			},
			"required": []string{"search_term"},
		},
	},
	Group: GroupRead,
}

// SearchIdleLeadsTool definition.
var SearchIdleLeadsTool = &Tool{
	Tool: mcp.Tool{
		Name: "search_idle_leads",
		Description: "Search for idle/stagnant leads: no activity for at least the given number of days. " +
			"Uses both updatedAt and latestActivityCreatedAt; a lead is returned only when BOTH dates are on or before (today − days), so the effective last activity is before the threshold.",
		Annotations: &mcp.ToolAnnotations{Title: "Search Idle Leads"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"days": map[string]any{
					"type":        "number",
					"description": "Minimum days with no activity (e.g. 10 for \"no activity since 10 days\").",
				},
				"time_zone": map[string]any{
					"type":        "string",
					"description": "IANA timezone for threshold (e.g. America/New_York). Default: Asia/Calcutta.",
				},
				"page": map[string]any{
					"type":        "number",
					"description": "0-based page (default 0).",
				},
				"size": map[string]any{
					"type":        "number",
					"description": "Page size, max 100 (default 20).",
				},
				"sort": map[string]any{
					"type":        "string",
					"description": "Sort e.g. \"createdAt,desc\" (default).",
				},
			},
			"required": []string{"days"},
		},
	},
	Group: GroupRead,
}

// readSort reads the sort parameter. An absent key means the caller wants the
// default ordering; an explicit null or empty string disables sorting.
func readSort(input map[string]any, defaultSort string) string {
	v, ok := input["sort"]
	if !ok {
		return defaultSort
	}
	s, _ := v.(string)
	return s
}

// ExecuteSearchLeads handles the search_leads tool.
func (t *Toolset) ExecuteSearchLeads(ctx context.Context, input map[string]any) (*Result, error) {
	filters, _ := ReadMapSlice(input, "filters", false)
	if len(filters) == 0 {
		return ErrorResult("Error: filters list cannot be empty. Provide at least one filter with field, operator, and value."), nil
	}
	page := ReadIntDefault(input, "page", 0)
	size := ReadIntDefault(input, "size", 20)
	sort := readSort(input, "createdAt,desc")
	t.log.Info().Int("filters", len(filters)).Msg("Searching leads")

	fields, err := t.crm.LeadFields(ctx)
	if err != nil {
		return ErrorResult(failureText("Search failed", err)), nil
	}
	index := schema.FilterableIndex(fields)
	clauses := make([]jsonrule.Clause, 0, len(filters))
	for _, f := range filters {
		clauses = append(clauses, jsonrule.ClauseFromMap(f))
	}
	return t.runLeadSearch(ctx, clauses, index, page, size, sort, "Search failed")
}

// ExecuteSearchLeadsByTerm handles the search_leads_by_term tool.
func (t *Toolset) ExecuteSearchLeadsByTerm(ctx context.Context, input map[string]any) (*Result, error) {
	term, _ := ReadString(input, "search_term", false)
	if term == "" {
		return ErrorResult("Error: search_term cannot be empty."), nil
	}
	page := ReadIntDefault(input, "page", 0)
	size := ReadIntDefault(input, "size", 20)
	sort := readSort(input, "updatedAt,desc")
	t.log.Info().Str("term", term).Msg("Searching leads by term")

	results, err := t.crm.SearchLeadsByTerm(ctx, jsonrule.NewMultiFieldTree(term), page, size, sort)
	if err != nil {
		return ErrorResult(failureText("Search failed", err)), nil
	}
	if len(results.Content) == 0 {
		return TextResult(fmt.Sprintf("No leads found matching '%s'. (Total in DB: %d)", term, results.Total)), nil
	}
	header := fmt.Sprintf("Found %d lead(s) for '%s' (page %d of %d, total %d)", len(results.Content), term, page+1, results.TotalPages, results.Total)
	return TextResult(formatLeadRows(results, header)), nil
}

// ExecuteSearchIdleLeads handles the search_idle_leads tool.
func (t *Toolset) ExecuteSearchIdleLeads(ctx context.Context, input map[string]any) (*Result, error) {
	days, err := ReadInt(input, "days", true)
	if err != nil {
		return ErrorResult("Error: days must be a number."), nil
	}
	if days < 0 {
		return ErrorResult("Error: days must be non-negative."), nil
	}
	tz, _ := ReadString(input, "time_zone", false)
	if tz == "" {
		tz = t.userTimezone(ctx)
	}
	page := ReadIntDefault(input, "page", 0)
	size := ReadIntDefault(input, "size", 20)
	sort := readSort(input, "createdAt,desc")
	t.log.Info().Int("days", days).Str("tz", tz).Msg("Searching idle leads")

	fields, err := t.crm.LeadFields(ctx)
	if err != nil {
		return ErrorResult(failureText("Search idle leads failed", err)), nil
	}
	index := schema.FilterableIndex(fields)
	clauses, err := jsonrule.IdleClauses(days, tz, index)
	if err != nil {
		return ErrorResultf("Error: %s", err), nil
	}
	return t.runLeadSearch(ctx, clauses, index, page, size, sort, "Search idle leads failed")
}

// runLeadSearch compiles the clauses and runs the shared search and
// formatting path. The current user's timezone is resolved only when some
// date clause needs one, so plain searches never touch /users/me.
func (t *Toolset) runLeadSearch(ctx context.Context, clauses []jsonrule.Clause, index map[string]schema.FieldMeta, page, size int, sort, failAction string) (*Result, error) {
	if len(index) == 0 {
		return TextResult("No filterable lead fields found for this tenant."), nil
	}
	defaultTZ := ""
	for _, c := range clauses {
		meta, ok := index[c.Field]
		if c.Field != "" && ok && jsonrule.IsDateType(meta.Type) && c.TimeZone == "" {
			defaultTZ = t.userTimezone(ctx)
			break
		}
	}
	tree, err := jsonrule.Compile(clauses, index, defaultTZ)
	if err != nil {
		return ErrorResultf("Invalid filters: %s", err), nil
	}
	results, err := t.crm.SearchLeads(ctx, tree, page, size, sort)
	if err != nil {
		return ErrorResult(failureText(failAction, err)), nil
	}
	if len(results.Content) == 0 {
		return TextResult(fmt.Sprintf("No leads found matching the filters. (Total in DB: %d)", results.Total)), nil
	}
	header := fmt.Sprintf("Found %d lead(s) (page %d of %d, total %d)", len(results.Content), page+1, results.TotalPages, results.Total)
	return TextResult(formatLeadRows(results, header)), nil
}

func formatLeadRows(results *kylas.Page, header string) string {
	lines := []string{header, rule60}
	for _, lead := range results.Content {
		lines = append(lines, leadRow(lead))
	}
	lines = append(lines, rule60)
	return joinLines(lines)
}

func leadRow(lead map[string]any) string {
	name := fullName(lead)
	if name == "" {
		name = "—"
	}
	return fmt.Sprintf("• ID: %s | Name: %s | Email: %s | Phone: %s",
		displayOr(lead, "id", "?"), name, primaryEmail(lead["emails"]), primaryPhone(lead["phoneNumbers"]))
}

// primaryEmail picks the entry flagged primary, falling back to the first.
func primaryEmail(v any) string {
	emails, ok := v.([]any)
	if !ok || len(emails) == 0 {
		return "-"
	}
	for _, raw := range emails {
		e, _ := raw.(map[string]any)
		if len(e) > 0 && isPrimary(e) {
			return displayOr(e, "value", "-")
		}
	}
	if first, _ := emails[0].(map[string]any); len(first) > 0 {
		return displayOr(first, "value", "-")
	}
	return "-"
}

// primaryPhone picks the entry flagged primary, falling back to the first,
// rendered as "code value".
func primaryPhone(v any) string {
	phones, ok := v.([]any)
	if !ok || len(phones) == 0 {
		return "-"
	}
	for _, raw := range phones {
		p, _ := raw.(map[string]any)
		if len(p) > 0 && isPrimary(p) {
			return phoneText(p)
		}
	}
	if first, _ := phones[0].(map[string]any); len(first) > 0 {
		return phoneText(first)
	}
	return "-"
}

func phoneText(p map[string]any) string {
	s := strings.TrimSpace(display(p["code"]) + " " + display(p["value"]))
	if s == "" {
		return "-"
	}
	return s
}

func isPrimary(entry map[string]any) bool {
	b, _ := entry["primary"].(bool)
	return b
}
