package tools

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/kylas"
	"github.com/kylastech/kylas-crm-mcp-server/pkg/payload"
	"github.com/kylastech/kylas-crm-mcp-server/pkg/schema"
)

const fieldValuesDescription = "Map of field identifier to value.\n" +
	"- Standard fields: use API name as key at top level (e.g. firstName, lastName, companyName, emails, phoneNumbers, leadSource, isNew).\n" +
	"- Custom fields: MUST be under \"customFieldValues\" with internal name as key (e.g. \"customFieldValues\": {\"cfLeadCheck\": \"Checked\"}). Do not use field ID as key; Kylas expects internal names. If you pass a field ID (e.g. \"1210985\"), the server will resolve it to the internal name (e.g. cfLeadCheck) automatically.\n" +
	"- For a single email use \"email\": \"user@example.com\". For phones use \"phone\": \"5551234567\" (or \"phoneNumbers\" array) and you MUST include \"phone_country_code\": \"IN\" or \"+91\" at top level. If the user provided phone(s) but did not specify country or dial code, do NOT call create_lead; ask the user (e.g. which country/dial code for these numbers?) and only call after they respond. Do not infer from currency or other context. Email types: OFFICE, PERSONAL. Phone types: MOBILE, WORK, HOME, PERSONAL. Exactly one email and at most one phone should be primary; first entry is primary by default.\n" +
	"- For picklists use the Option ID (number) from the cheat sheet.\n" +
	"- For date/datetime fields: the user gives a time in their timezone (e.g. \"11th Feb 2026 at 7:30 AM\"). Call get_current_user, then parse_datetime_to_utc_iso_tool(local_datetime, timezone) and put the returned UTC ISO string in field_values."

// CreateLeadTool definition.
var CreateLeadTool = &Tool{
	Tool: mcp.Tool{
		Name: "create_lead",
		Description: "Create a lead in Kylas CRM with only the fields the user wants (no static field list).\n" +
			"You MUST call get_lead_field_instructions FIRST to get valid API names and Field IDs. " +
			"Infer from user context which fields to send; include only those in field_values.",
		Annotations: &mcp.ToolAnnotations{Title: "Create Lead"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"field_values": map[string]any{
					"type":        "object",
					"description": fieldValuesDescription,
				},
			},
			"required": []string{"field_values"},
		},
	},
	Group: GroupWrite,
}

// UpdateLeadTool definition.
var UpdateLeadTool = &Tool{
	Tool: mcp.Tool{
		Name: "update_lead",
		Description: "Update a lead in Kylas CRM. Fetches the lead first, merges your field_values into it, then PUTs the full body. " +
			"Same field_values format as create_lead. Call get_lead_field_instructions first for API names and custom field internal names. " +
			"For owner: use lookup_users to get the user ID, then pass ownerId: <id> in field_values.",
		Annotations: &mcp.ToolAnnotations{Title: "Update Lead"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"lead_id": map[string]any{
					"type":        "number",
					"description": "The lead ID to update (e.g. from search_leads or search_leads_by_term results).",
				},
				"field_values": map[string]any{
					"type":        "object",
					"description": "Map of field identifier to value (same as create_lead: firstName, lastName, email, phone with phone_country_code, customFieldValues, picklist Option IDs, date/datetime in UTC ISO, etc.). These are merged over the existing lead; other fields are left unchanged.",
				},
			},
			"required": []string{"lead_id", "field_values"},
		},
	},
	Group: GroupWrite,
}

// GetLeadTool definition.
var GetLeadTool = &Tool{
	Tool: mcp.Tool{
		Name: "get_lead",
		Description: "Get full details of a lead by ID. Use when the user asks for complete lead info, lead details, or to view a specific lead.",
		Annotations: &mcp.ToolAnnotations{Title: "Get Lead"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"lead_id": map[string]any{
					"type":        "number",
					"description": "The lead ID (e.g. from search_leads or search_leads_by_term results).",
				},
			},
			"required": []string{"lead_id"},
		},
	},
	Group: GroupRead,
}

// buildLeadPayload resolves custom field ids and normalizes field values into
// the API payload shape. The fields fetch only happens when some key needs
// resolving.
func (t *Toolset) buildLeadPayload(ctx context.Context, fv map[string]any) (map[string]any, error) {
	var idToName map[string]string
	if payload.HasDigitKeys(fv) {
		fields, err := t.crm.LeadFields(ctx)
		if err != nil {
			return nil, err
		}
		idToName = schema.CustomIDToName(fields)
	}
	return payload.Normalize(fv, idToName)
}

// ExecuteCreateLead handles the create_lead tool.
func (t *Toolset) ExecuteCreateLead(ctx context.Context, input map[string]any) (*Result, error) {
	fv, _ := ReadMap(input, "field_values", false)
	body, err := t.buildLeadPayload(ctx, fv)
	if err != nil {
		if isAPIError(err) {
			return ErrorResult(failureText("Failed to create lead", err)), nil
		}
		return ErrorResultf("✗ %s", err), nil
	}
	if len(body) == 0 {
		err := &kylas.APIError{Message: "field_values cannot be empty"}
		return ErrorResult(failureText("Failed to create lead", err)), nil
	}
	t.log.Info().Strs("fields", slices.Sorted(maps.Keys(body))).Msg("Creating lead")

	result, err := t.crm.CreateLead(ctx, body)
	if err != nil {
		return ErrorResult(failureText("Failed to create lead", err)), nil
	}
	name := fullName(result)
	if name == "" {
		name = "Lead"
	}
	return TextResult(fmt.Sprintf("✓ Lead created successfully.\n  ID: %s\n  Name: %s", displayOr(result, "id", "?"), name)), nil
}

// ExecuteUpdateLead handles the update_lead tool.
func (t *Toolset) ExecuteUpdateLead(ctx context.Context, input map[string]any) (*Result, error) {
	id, err := ReadNumber(input, "lead_id", true)
	if err != nil {
		return ErrorResult("Error: lead_id must be a number."), nil
	}
	leadID := int64(id)
	fv, _ := ReadMap(input, "field_values", false)
	if len(fv) == 0 {
		err := &kylas.APIError{Message: "field_values cannot be empty for update."}
		return ErrorResult(failureText("Failed to update lead", err)), nil
	}
	body, err := t.buildLeadPayload(ctx, fv)
	if err != nil {
		if isAPIError(err) {
			return ErrorResult(failureText("Failed to update lead", err)), nil
		}
		return ErrorResultf("✗ %s", err), nil
	}
	if len(body) == 0 {
		err := &kylas.APIError{Message: "field_values produced an empty payload."}
		return ErrorResult(failureText("Failed to update lead", err)), nil
	}
	t.log.Info().Int64("lead_id", leadID).Strs("fields", slices.Sorted(maps.Keys(body))).Msg("Updating lead")

	result, err := t.crm.UpdateLead(ctx, leadID, body)
	if err != nil {
		return ErrorResult(failureText("Failed to update lead", err)), nil
	}
	name := fullName(result)
	if name == "" {
		name = "Lead"
	}
	lid := displayOr(result, "id", strconv.FormatInt(leadID, 10))
	return TextResult(fmt.Sprintf("✓ Lead updated successfully.\n  ID: %s\n  Name: %s", lid, name)), nil
}

// ExecuteGetLead handles the get_lead tool.
func (t *Toolset) ExecuteGetLead(ctx context.Context, input map[string]any) (*Result, error) {
	id, err := ReadNumber(input, "lead_id", true)
	if err != nil {
		return ErrorResult("Error: lead_id must be a number."), nil
	}
	leadID := int64(id)
	t.log.Info().Int64("lead_id", leadID).Msg("Fetching lead")

	lead, err := t.crm.GetLead(ctx, leadID)
	if err != nil {
		return ErrorResult(failureText("Failed to get lead", err)), nil
	}
	return TextResult(formatLeadDetails(lead)), nil
}

// formatLeadDetails renders a full lead object as a readable block.
func formatLeadDetails(lead map[string]any) string {
	lines := []string{
		banner60,
		"LEAD DETAILS",
		banner60,
		"ID: " + displayOr(lead, "id", "—"),
		"First Name: " + displayOr(lead, "firstName", "—"),
		"Last Name: " + displayOr(lead, "lastName", "—"),
		"Company Name: " + displayOr(lead, "companyName", "—"),
	}
	if emails, _ := lead["emails"].([]any); len(emails) > 0 {
		for _, raw := range emails {
			e, _ := raw.(map[string]any)
			lines = append(lines, fmt.Sprintf("Email (%s): %s%s", display(e["type"]), display(e["value"]), primarySuffix(e)))
		}
	} else {
		lines = append(lines, "Email: —")
	}
	if phones, _ := lead["phoneNumbers"].([]any); len(phones) > 0 {
		for _, raw := range phones {
			p, _ := raw.(map[string]any)
			lines = append(lines, fmt.Sprintf("Phone (%s): +%s %s%s", display(p["type"]), display(p["code"]), display(p["value"]), primarySuffix(p)))
		}
	} else {
		lines = append(lines, "Phone: —")
	}
	switch pl := lead["pipeline"].(type) {
	case map[string]any:
		stage, _ := pl["stage"].(map[string]any)
		lines = append(lines, "Pipeline: "+displayOr(pl, "name", "—"), "Stage: "+displayOr(stage, "name", "—"))
	case nil:
		lines = append(lines, "Pipeline: —", "Stage: —")
	default:
		lines = append(lines, "Pipeline: "+display(pl))
	}
	lines = append(lines,
		"Pipeline Stage Reason: "+displayOr(lead, "pipelineStageReason", "—"),
		"Owner ID: "+displayOr(lead, "ownerId", "—"),
		"Created At: "+displayOr(lead, "createdAt", "—"),
		"Updated At: "+displayOr(lead, "updatedAt", "—"),
	)
	if custom, _ := lead["customFieldValues"].(map[string]any); len(custom) > 0 {
		lines = append(lines, "", "Custom fields:")
		for _, k := range slices.Sorted(maps.Keys(custom)) {
			lines = append(lines, fmt.Sprintf("  %s: %s", k, display(custom[k])))
		}
	}
	for _, key := range []string{"address", "city", "state", "zipcode", "country", "salutation", "leadSource", "companyWebsite", "facebook", "twitter", "linkedIn"} {
		if val, ok := lead[key]; ok && val != nil && val != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", key, display(val)))
		}
	}
	lines = append(lines, banner60)
	return joinLines(lines)
}

func primarySuffix(entry map[string]any) string {
	if isPrimary(entry) {
		return " (primary)"
	}
	return ""
}
