package tools

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/kylas"
	"github.com/kylastech/kylas-crm-mcp-server/pkg/shared/timeutil"
)

// Toolset binds the lead tools to a CRM client. Tool definitions live in
// their topic files; Tools() attaches the Execute methods.
type Toolset struct {
	crm CRMClient
	log zerolog.Logger
}

// NewToolset creates a toolset backed by the given CRM client.
func NewToolset(crm CRMClient, log zerolog.Logger) *Toolset {
	return &Toolset{crm: crm, log: log}
}

// Tools returns all tool definitions with Execute bound to this toolset.
func (t *Toolset) Tools() []*Tool {
	bind := func(def *Tool, exec func(context.Context, map[string]any) (*Result, error)) *Tool {
		tool := def.Clone()
		tool.Execute = exec
		return tool
	}
	return []*Tool{
		bind(GetLeadFieldInstructionsTool, t.ExecuteGetLeadFieldInstructions),
		bind(GetCurrentUserTool, t.ExecuteGetCurrentUser),
		bind(LookupUsersTool, t.ExecuteLookupUsers),
		bind(LookupProductsTool, t.ExecuteLookupProducts),
		bind(LookupPipelinesTool, t.ExecuteLookupPipelines),
		bind(GetPipelineStagesTool, t.ExecuteGetPipelineStages),
		bind(GetPipelineDetailsTool, t.ExecuteGetPipelineDetails),
		bind(ParseDatetimeTool, t.ExecuteParseDatetime),
		bind(CreateLeadTool, t.ExecuteCreateLead),
		bind(UpdateLeadTool, t.ExecuteUpdateLead),
		bind(GetLeadTool, t.ExecuteGetLead),
		bind(SearchLeadsTool, t.ExecuteSearchLeads),
		bind(SearchLeadsByTermTool, t.ExecuteSearchLeadsByTerm),
		bind(SearchIdleLeadsTool, t.ExecuteSearchIdleLeads),
	}
}

// NewRegistry returns a registry with every lead tool registered.
func (t *Toolset) NewRegistry() *Registry {
	reg := NewRegistry()
	for _, tool := range t.Tools() {
		reg.Register(tool)
	}
	return reg
}

// userTimezone resolves the current user's timezone for date handling,
// falling back to the server default when the profile is unavailable.
func (t *Toolset) userTimezone(ctx context.Context) string {
	user, err := t.crm.CurrentUser(ctx)
	if err != nil {
		return timeutil.DefaultTimezone
	}
	if tz, ok := user["timezone"].(string); ok && tz != "" {
		return tz
	}
	return timeutil.DefaultTimezone
}

// Banner widths match the tool text formats: 50 for lookups and the user
// profile, 60 for lead details and search results.
var (
	banner50 = strings.Repeat("=", 50)
	rule50   = strings.Repeat("-", 50)
	rule60   = strings.Repeat("-", 60)
	banner60 = strings.Repeat("=", 60)
)

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// display renders a decoded JSON value for agent-facing text. float64 ids
// must not fall into exponent notation.
func display(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string:
		return n
	default:
		return fmt.Sprint(v)
	}
}

// displayOr renders m[key], or fallback when the value is missing or null.
func displayOr(m map[string]any, key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	if s := display(v); s != "" {
		return s
	}
	return fallback
}

// fullName joins firstName and lastName from a record.
func fullName(m map[string]any) string {
	first, _ := m["firstName"].(string)
	last, _ := m["lastName"].(string)
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// errorText maps a failure to the short agent-facing error string.
func errorText(err error) string {
	var apiErr *kylas.APIError
	if errors.As(err, &apiErr) {
		return "Error: " + apiErr.Message
	}
	return "Unexpected error: " + err.Error()
}

// failureText maps a failure to the detailed agent-facing error string used
// by the lead tools.
func failureText(action string, err error) string {
	var apiErr *kylas.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("✗ %s: %s\n  Details: %s", action, apiErr.Message, apiErr.Body)
	}
	return fmt.Sprintf("✗ Unexpected error: %s", err)
}

func isAPIError(err error) bool {
	var apiErr *kylas.APIError
	return errors.As(err, &apiErr)
}
