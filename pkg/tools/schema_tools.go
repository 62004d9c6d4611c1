package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/schema"
)

// GetLeadFieldInstructionsTool definition.
var GetLeadFieldInstructionsTool = &Tool{
	Tool: mcp.Tool{
		Name: "get_lead_field_instructions",
		Description: "Get all lead fields for the current tenant. CALL THIS FIRST before creating a lead. " +
			"Returns a cheat sheet with API names (standard fields), Field IDs (custom fields), and Picklist Option IDs. " +
			"Use this to build field_values for create_lead based on what the user wants—do not use static fields.",
		Annotations: &mcp.ToolAnnotations{Title: "Lead Field Instructions"},
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
	Group: GroupSchema,
}

// GetCurrentUserTool definition.
var GetCurrentUserTool = &Tool{
	Tool: mcp.Tool{
		Name: "get_current_user",
		Description: "Get the current authenticated user's profile from Kylas (GET /users/me). " +
			"Call this whenever a date or datetime-related query is involved. " +
			"Returns timezone (IANA, e.g. Asia/Calcutta), recordActions (call, email, sms, etc.), name, and other profile fields. " +
			"For filtering (search_leads, search_idle_leads): use the returned timezone as the timeZone in date/datetime filters; keep the user's date/datetime as-is (do not convert to UTC). " +
			"For create_lead: when the user provides a datetime in their own words (e.g. \"11th Feb 2026 at 7:30 AM\"), interpret it in this timezone, convert to UTC using parse_datetime_to_utc_iso_tool, and send the UTC ISO string in field_values.",
		Annotations: &mcp.ToolAnnotations{Title: "Current User"},
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
	Group: GroupUsers,
}

// ExecuteGetLeadFieldInstructions handles the get_lead_field_instructions
// tool. The cheat sheet is rebuilt from the API on every call so new custom
// fields and picklist options show up without a restart.
func (t *Toolset) ExecuteGetLeadFieldInstructions(ctx context.Context, _ map[string]any) (*Result, error) {
	t.log.Info().Msg("Fetching lead field instructions")
	fields, err := t.crm.LeadFields(ctx)
	if err != nil {
		return ErrorResult(errorText(err)), nil
	}
	return TextResult(schema.CheatSheet(fields)), nil
}

// ExecuteGetCurrentUser handles the get_current_user tool.
func (t *Toolset) ExecuteGetCurrentUser(ctx context.Context, _ map[string]any) (*Result, error) {
	t.log.Info().Msg("Fetching current user (users/me)")
	user, err := t.crm.CurrentUser(ctx)
	if err != nil {
		return ErrorResult(errorText(err)), nil
	}
	tz := displayOr(user, "timezone", "UTC")
	name := displayOr(user, "name", "")
	if name == "" {
		name = fullName(user)
	}
	if name == "" {
		name = "—"
	}
	lines := []string{
		banner50,
		"CURRENT USER (GET /users/me)",
		banner50,
		"Name: " + name,
		"Timezone: " + tz,
		"",
		"recordActions (permissions):",
	}
	if actions, ok := user["recordActions"].(map[string]any); ok {
		keys := make([]string, 0, len(actions))
		for k := range actions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("  • %s: %v", k, actions[k]))
		}
	}
	lines = append(lines,
		"",
		"Use this timezone for:",
		"  - Date/datetime filters in search_leads: pass timeZone in each date filter; do not convert filter values to UTC.",
		"  - create_lead with datetime fields: convert user's local datetime to UTC with parse_datetime_to_utc_iso_tool, then send UTC ISO in field_values.",
		banner50,
	)
	return TextResult(joinLines(lines)), nil
}
