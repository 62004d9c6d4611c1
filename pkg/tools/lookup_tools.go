package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LookupUsersTool definition.
var LookupUsersTool = &Tool{
	Tool: mcp.Tool{
		Name: "lookup_users",
		Description: "Look up users by name, or list all users in the system. " +
			"Use return_all=true (with query \"name:\" or empty) to fetch all users in one response (all pages combined). " +
			"For name search: query in field:value form (e.g. \"firstName:last\", \"name:Last\"). " +
			"If one user is found, use that ID in search_leads; if multiple, ask which one.",
		Annotations: &mcp.ToolAnnotations{Title: "Lookup Users"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search string (e.g. \"firstName:last\", \"name:Last\"). Use \"name:\" or leave default to list all when return_all=true.",
				},
				"page": map[string]any{
					"type":        "number",
					"description": "0-based page (default 0). Ignored when return_all=true.",
				},
				"size": map[string]any{
					"type":        "number",
					"description": "Page size, max 50 (default 50). Used per page when return_all=true.",
				},
				"return_all": map[string]any{
					"type":        "boolean",
					"description": "If true, fetch all pages and return every user in one response (cap 500).",
				},
			},
		},
	},
	Group: GroupUsers,
}

// LookupProductsTool definition.
var LookupProductsTool = &Tool{
	Tool: mcp.Tool{
		Name: "lookup_products",
		Description: "Look up products by name. Use this BEFORE filtering leads by product when the user gives a product name. " +
			"If one product is found, use that product's ID in search_leads (e.g. {\"field\": \"products\", \"operator\": \"equal\", \"value\": <id>}). " +
			"If multiple products are found, ask the user which product they mean (list the options), then use the chosen product's ID in search_leads.",
		Annotations: &mcp.ToolAnnotations{Title: "Lookup Products"},
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search string. Use \"name:<product_name>\" (e.g. \"name:Widget\") or just the product name; the server will send name:value to the API.",
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
			"required": []string{"query"},
		},
	},
	Group: GroupCatalog,
}

// ExecuteLookupUsers handles the lookup_users tool. With return_all it walks
// pages until the cap; otherwise it returns one page.
func (t *Toolset) ExecuteLookupUsers(ctx context.Context, input map[string]any) (*Result, error) {
	query := ReadStringDefault(input, "query", "name:")
	page := ReadIntDefault(input, "page", 0)
	size := ReadIntDefault(input, "size", 50)
	returnAll := ReadBool(input, "return_all", false)
	t.log.Info().Str("q", query).Bool("return_all", returnAll).Msg("User lookup")

	pageSize := min(size, 50)
	maxUsers := pageSize
	if returnAll {
		maxUsers = 500
	}
	var content []map[string]any
	total := 0
	totalPages := 1
	currentPage := page
	for {
		chunk, err := t.crm.LookupUsers(ctx, query, currentPage, pageSize)
		if err != nil {
			return ErrorResult(errorText(err)), nil
		}
		total = chunk.Total
		totalPages = chunk.TotalPages
		content = append(content, chunk.Content...)
		if !returnAll || currentPage >= totalPages-1 || len(content) >= maxUsers || len(chunk.Content) < pageSize {
			break
		}
		currentPage++
	}

	if len(content) == 0 {
		return TextResult(fmt.Sprintf("No users found matching '%s'.", query)), nil
	}
	var header string
	if returnAll {
		header = fmt.Sprintf("Found %d user(s)", len(content))
		if query != "name:" {
			header += fmt.Sprintf(" matching '%s'", query)
		}
		header += fmt.Sprintf(" (total %d, all returned in one list)", total)
	} else {
		header = fmt.Sprintf("Found %d user(s) matching '%s' (total %d, page %d of %d)", len(content), query, total, page+1, totalPages)
	}
	lines := []string{header, rule50}
	for _, u := range content {
		lines = append(lines, fmt.Sprintf("  • ID: %s  |  Name: %s", displayOr(u, "id", "?"), displayOr(u, "name", "—")))
	}
	lines = append(lines, rule50)
	if len(content) > 1 && !returnAll {
		lines = append(lines, "More than one user matched. Ask the user which one they mean, then use that ID in search_leads (e.g. filter createdBy / ownerId equal to that ID).")
	} else if len(content) == 1 {
		lines = append(lines, fmt.Sprintf("Use user ID %s in search_leads when filtering by created by / owner / etc.", displayOr(content[0], "id", "")))
	}
	return TextResult(joinLines(lines)), nil
}

// ExecuteLookupProducts handles the lookup_products tool.
func (t *Toolset) ExecuteLookupProducts(ctx context.Context, input map[string]any) (*Result, error) {
	query, _ := ReadString(input, "query", false)
	if query == "" {
		return ErrorResult("Error: query cannot be empty. Provide a product name or search term (e.g. 'name:Widget' or 'Widget')."), nil
	}
	// Plain text means a product name; the API wants field:value form.
	if !strings.Contains(query, ":") {
		query = "name:" + query
	}
	page := ReadIntDefault(input, "page", 0)
	size := ReadIntDefault(input, "size", 50)
	t.log.Info().Str("q", query).Msg("Product lookup")

	result, err := t.crm.LookupProducts(ctx, query, page, min(size, 50))
	if err != nil {
		return ErrorResult(errorText(err)), nil
	}
	if len(result.Content) == 0 {
		return TextResult(fmt.Sprintf("No products found matching '%s'.", query)), nil
	}
	lines := []string{
		fmt.Sprintf("Found %d product(s) matching '%s' (total %d, page %d of %d)", len(result.Content), query, result.Total, page+1, result.TotalPages),
		rule50,
	}
	for _, p := range result.Content {
		name := displayOr(p, "name", displayOr(p, "displayName", "—"))
		lines = append(lines, fmt.Sprintf("  • ID: %s  |  Name: %s", displayOr(p, "id", "?"), name))
	}
	lines = append(lines, rule50)
	if result.Total > 1 {
		lines = append(lines, "More than one product matched. Ask the user which one they mean, then use that ID in search_leads (e.g. filter products equal to that ID).")
	} else {
		lines = append(lines, fmt.Sprintf("Use product ID %s in search_leads when filtering by product (e.g. {\"field\": \"products\", \"operator\": \"equal\", \"value\": <id>}).", displayOr(result.Content[0], "id", "")))
	}
	return TextResult(joinLines(lines)), nil
}
