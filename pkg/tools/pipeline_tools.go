package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LookupPipelinesTool definition.
var LookupPipelinesTool = &Tool{
	Tool: mcp.Tool{
		Name: "lookup_pipelines",
		Description: "Look up pipelines by name (for leads). Use when the user asks for leads by stage (e.g. open/closed/won/lost) but does not specify which pipeline. " +
			"Call this first; do NOT call get_pipeline_stages until after the user confirms the pipeline. " +
			"Present the pipeline(s) (id and name) and ask the user which pipeline they mean. If only one pipeline is found, still ask for confirmation. " +
			"Only after the user confirms, call get_pipeline_stages with that pipeline ID to get stages for that pipeline, then search_leads.",
		Annotations: &mcp.ToolAnnotations{Title: "Lookup Pipelines"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search string. Use \"name:<pipeline_name>\" or just the pipeline name; empty string returns all pipelines for the entity.",
				},
				"entity_type": map[string]any{
					"type":        "string",
					"description": "Entity type (default LEAD).",
				},
				"page": map[string]any{
					"type":        "number",
					"description": "0-based page (default 0).",
				},
				"size": map[string]any{
					"type":        "number",
					"description": "Max 50 (default 50).",
				},
			},
		},
	},
	Group: GroupCatalog,
}

// GetPipelineStagesTool definition.
var GetPipelineStagesTool = &Tool{
	Tool: mcp.Tool{
		Name: "get_pipeline_stages",
		Description: "Get stages for a pipeline. Call this only after the user has confirmed which pipeline to use (from lookup_pipelines). Do not call before pipeline confirmation. " +
			"Returns pipeline name and list of stages for that pipeline only, with id, name, and forecastingType (OPEN, CLOSED_WON, CLOSED_LOST, CLOSED_UNQUALIFIED). " +
			"Use the stage IDs in search_leads: filters [{\"field\": \"pipeline\", \"operator\": \"equal\", \"value\": pipeline_id}, {\"field\": \"pipelineStage\", \"operator\": \"equal\", \"value\": stage_id}]. " +
			"If the user said \"open leads\" or \"closed leads\" and more than one stage has the same forecastingType, ask which stage they mean.",
		Annotations: &mcp.ToolAnnotations{Title: "Pipeline Stages"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pipeline_id": map[string]any{
					"type":        "number",
					"description": "The pipeline ID (from lookup_pipelines).",
				},
			},
			"required": []string{"pipeline_id"},
		},
	},
	Group: GroupCatalog,
}

// GetPipelineDetailsTool definition.
var GetPipelineDetailsTool = &Tool{
	Tool: mcp.Tool{
		Name: "get_pipeline_details",
		Description: "Get full pipeline details by ID: stages plus unqualifiedReasons and lostReasons. " +
			"Call this when moving a lead to Closed Lost or Closed Unqualified. Present the relevant reasons list to the user, " +
			"ask them to pick one, then call update_lead with pipelineStageReason set to that exact string (e.g. \"No followup\", \"Booked with competitor\").",
		Annotations: &mcp.ToolAnnotations{Title: "Pipeline Details"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pipeline_id": map[string]any{
					"type":        "number",
					"description": "The pipeline ID (from the lead's current pipeline or from lookup_pipelines).",
				},
			},
			"required": []string{"pipeline_id"},
		},
	},
	Group: GroupCatalog,
}

// ExecuteLookupPipelines handles the lookup_pipelines tool.
func (t *Toolset) ExecuteLookupPipelines(ctx context.Context, input map[string]any) (*Result, error) {
	query, _ := ReadString(input, "query", false)
	entityType := ReadStringDefault(input, "entity_type", "LEAD")
	page := ReadIntDefault(input, "page", 0)
	size := ReadIntDefault(input, "size", 50)
	if query != "" && !strings.Contains(query, ":") {
		query = "name:" + query
	}
	// Empty q: the API returns all pipelines when q=name:
	if query == "" {
		query = "name:"
	}
	t.log.Info().Str("entity_type", entityType).Str("q", query).Msg("Pipeline lookup")

	result, err := t.crm.LookupPipelines(ctx, entityType, query, page, min(size, 50))
	if err != nil {
		return ErrorResult(errorText(err)), nil
	}
	if len(result.Content) == 0 {
		return TextResult(fmt.Sprintf("No pipelines found for entity %s matching '%s'.", entityType, query)), nil
	}
	lines := []string{
		fmt.Sprintf("Found %d pipeline(s) (entityType=%s, total %d, page %d of %d)", len(result.Content), entityType, result.Total, page+1, result.TotalPages),
		rule50,
	}
	for _, p := range result.Content {
		name := displayOr(p, "name", displayOr(p, "displayName", "—"))
		lines = append(lines, fmt.Sprintf("  • ID: %s  |  Name: %s", displayOr(p, "id", "?"), name))
	}
	lines = append(lines, rule50)
	lines = append(lines, "Ask the user to confirm which pipeline to use (list id and name). Do NOT call get_pipeline_stages until the user has confirmed. After confirmation, call get_pipeline_stages with that pipeline ID only, then search_leads with pipeline + pipelineStage filters.")
	return TextResult(joinLines(lines)), nil
}

// ExecuteGetPipelineStages handles the get_pipeline_stages tool.
func (t *Toolset) ExecuteGetPipelineStages(ctx context.Context, input map[string]any) (*Result, error) {
	id, err := ReadNumber(input, "pipeline_id", true)
	if err != nil {
		return ErrorResult("Error: pipeline_id must be a number."), nil
	}
	pipelineID := int64(id)
	t.log.Info().Int64("pipeline_id", pipelineID).Msg("Pipeline stages")

	pipelines, err := t.crm.PipelineSummary(ctx, pipelineID)
	if err != nil {
		return ErrorResult(errorText(err)), nil
	}
	if len(pipelines) == 0 {
		return TextResult(fmt.Sprintf("No pipeline found with ID %d.", pipelineID)), nil
	}
	var lines []string
	for _, pl := range pipelines {
		lines = append(lines, fmt.Sprintf("Pipeline: %s (ID: %s)", displayOr(pl, "name", "—"), displayOr(pl, "id", "?")))
		stages, _ := pl["stages"].([]any)
		if len(stages) == 0 {
			lines = append(lines, "  (no stages)")
		} else {
			for _, raw := range stages {
				s, _ := raw.(map[string]any)
				lines = append(lines, formatStage(s))
			}
		}
		lines = append(lines, "")
	}
	lines = append(lines, "Map user intent to stage: 'open' → OPEN; 'won' → CLOSED_WON; 'lost' → CLOSED_LOST; 'closed unqualified' → CLOSED_UNQUALIFIED. If multiple stages match (e.g. several OPEN stages), ask the user which stage they mean, then use that stage ID in search_leads with pipeline and pipelineStage filters.")
	return TextResult(strings.TrimSpace(joinLines(lines))), nil
}

// ExecuteGetPipelineDetails handles the get_pipeline_details tool.
func (t *Toolset) ExecuteGetPipelineDetails(ctx context.Context, input map[string]any) (*Result, error) {
	id, err := ReadNumber(input, "pipeline_id", true)
	if err != nil {
		return ErrorResult("Error: pipeline_id must be a number."), nil
	}
	pipelineID := int64(id)
	t.log.Info().Int64("pipeline_id", pipelineID).Msg("Pipeline details")

	pipeline, err := t.crm.PipelineByID(ctx, pipelineID)
	if err != nil {
		return ErrorResult(errorText(err)), nil
	}
	lines := []string{
		fmt.Sprintf("Pipeline: %s (ID: %d)", displayOr(pipeline, "name", "—"), pipelineID),
		"",
		"Stages:",
	}
	stages, _ := pipeline["stages"].([]any)
	for _, raw := range stages {
		s, _ := raw.(map[string]any)
		lines = append(lines, formatStage(s))
	}
	lines = append(lines,
		"",
		"Closed Unqualified reasons (use exact string as pipelineStageReason when moving to Closed Unqualified):",
	)
	lines = append(lines, formatReasons(pipeline["unqualifiedReasons"])...)
	lines = append(lines,
		"",
		"Closed Lost reasons (use exact string as pipelineStageReason when moving to Closed Lost):",
	)
	lines = append(lines, formatReasons(pipeline["lostReasons"])...)
	lines = append(lines, "")
	lines = append(lines, "When updating lead to Closed Lost or Closed Unqualified, ask the user to pick one reason from the list above, then call update_lead with pipelineStageReason set to that exact string.")
	return TextResult(joinLines(lines)), nil
}

func formatStage(s map[string]any) string {
	return fmt.Sprintf("  • Stage ID: %s  |  Name: %s  |  forecastingType: %s",
		displayOr(s, "id", "?"), displayOr(s, "name", "—"), display(s["forecastingType"]))
}

func formatReasons(v any) []string {
	reasons, _ := v.([]any)
	if len(reasons) == 0 {
		return []string{"  (none configured)"}
	}
	lines := make([]string, 0, len(reasons))
	for _, r := range reasons {
		lines = append(lines, fmt.Sprintf("  • %q", display(r)))
	}
	return lines
}
