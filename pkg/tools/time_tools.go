package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/shared/timeutil"
)

// ParseDatetimeTool definition.
var ParseDatetimeTool = &Tool{
	Tool: mcp.Tool{
		Name: "parse_datetime_to_utc_iso_tool",
		Description: "Parse a datetime string in the user's timezone and return UTC ISO string for the Kylas API. " +
			"Call get_current_user first to get the user's timezone. Use the returned string in create_lead field_values for date/datetime fields. " +
			"Example: user says \"create lead with follow-up 11th Feb 2026 at 7:30 AM\" → get_current_user → timezone Asia/Calcutta → parse_datetime_to_utc_iso_tool(\"11 Feb 2026 7:30 AM\", \"Asia/Calcutta\") → use result in field_values.",
		Annotations: &mcp.ToolAnnotations{Title: "Parse Datetime To UTC"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"local_datetime": map[string]any{
					"type":        "string",
					"description": "Datetime as the user said it (e.g. \"11 Feb 2026 7:30 AM\", \"11th Feb 2026 at 7:30 am\").",
				},
				"timezone": map[string]any{
					"type":        "string",
					"description": "IANA timezone from get_current_user (e.g. Asia/Calcutta).",
				},
			},
			"required": []string{"local_datetime", "timezone"},
		},
	},
	Group: GroupTime,
}

// ExecuteParseDatetime handles the parse_datetime_to_utc_iso_tool tool.
func (t *Toolset) ExecuteParseDatetime(ctx context.Context, input map[string]any) (*Result, error) {
	localDatetime, err := ReadString(input, "local_datetime", true)
	if err != nil {
		return ErrorResultf("Error: %s", err), nil
	}
	timezone, err := ReadString(input, "timezone", true)
	if err != nil {
		return ErrorResultf("Error: %s", err), nil
	}
	iso, err := timeutil.ToUTCInstant(localDatetime, timezone)
	if err != nil {
		return ErrorResultf("Error: %s", err), nil
	}
	return TextResult(iso), nil
}
