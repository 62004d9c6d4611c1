// Package tools provides the MCP tool surface for Kylas lead management:
// tool definitions, registration, policy enforcement, and execution.
package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool wraps an MCP tool definition with execution logic and a policy group.
type Tool struct {
	mcp.Tool // Name, Description, InputSchema

	Group   string
	Execute func(ctx context.Context, input map[string]any) (*Result, error)
}

// Tool group constants for policy composition.
const (
	GroupSchema  = "group:schema"
	GroupUsers   = "group:users"
	GroupCatalog = "group:catalog"
	GroupTime    = "group:time"
	GroupWrite   = "group:write"
	GroupRead    = "group:read"
)

// Result standardizes tool output. Every outcome the agent should see,
// including API failures, is carried as content; errors escape only for
// infrastructure problems like an unknown tool name.
type Result struct {
	Status  ResultStatus   `json:"status"`
	Content []ContentBlock `json:"content,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Text returns the text content from the result, or the error message if
// the status is error and no content was set.
func (r *Result) Text() string {
	for _, block := range r.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text
		}
	}
	if r.Status == ResultError {
		return r.Error
	}
	return ""
}

// IsError returns true if the result indicates an error.
func (r *Result) IsError() bool {
	return r.Status == ResultError
}

// ContentBlock is one piece of tool output. This server only emits text.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ResultStatus indicates the outcome of tool execution.
type ResultStatus string

const (
	// ResultSuccess indicates the tool completed successfully.
	ResultSuccess ResultStatus = "success"
	// ResultError indicates the tool failed with an error.
	ResultError ResultStatus = "error"
)

// Clone creates a copy of the tool.
func (t *Tool) Clone() *Tool {
	return &Tool{
		Tool:    t.Tool,
		Group:   t.Group,
		Execute: t.Execute,
	}
}
