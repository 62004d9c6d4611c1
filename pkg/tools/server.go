package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/kylas"
)

// ServerName and ServerVersion identify this server to MCP clients.
const (
	ServerName    = "kylas-crm-mcp-server"
	ServerVersion = "1.0.0"
)

// NewMCPServer assembles the MCP server from the executor's tool set. Every
// tool the policy allows is registered; denied tools are invisible to the
// client rather than failing at call time. The agent instructions are served
// to the client at initialize.
func NewMCPServer(executor *Executor, log zerolog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Instructions: SystemInstructions,
	})
	server.AddReceivingMiddleware(loggingMiddleware(log))
	for _, tool := range executor.AllowedTools() {
		server.AddTool(&tool.Tool, toolHandler(executor, tool.Name))
	}
	return server
}

// RunStdio serves the MCP server over stdin/stdout until the context ends.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves the MCP server over streamable HTTP. The connecting
// client's User-Agent decides the client name reported upstream to Kylas;
// stdio sessions stay "unknown".
func HTTPHandler(server *mcp.Server) http.Handler {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := kylas.DetectClientName(r.Header.Get("User-Agent"))
		handler.ServeHTTP(w, r.WithContext(kylas.WithClientName(r.Context(), name)))
	})
}

func toolHandler(executor *Executor, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := executor.Execute(ctx, name, decodeArguments(req.Params.Arguments))
		if err != nil {
			return nil, err
		}
		return callToolResult(result), nil
	}
}

// decodeArguments normalizes tool arguments into a map. Raw-registered tools
// receive arguments as unparsed JSON; a marshal round trip covers any other
// shape a transport hands over.
func decodeArguments(v any) map[string]any {
	out := map[string]any{}
	switch args := v.(type) {
	case nil:
	case map[string]any:
		return args
	case json.RawMessage:
		_ = json.Unmarshal(args, &out)
	case []byte:
		_ = json.Unmarshal(args, &out)
	default:
		if data, err := json.Marshal(v); err == nil {
			_ = json.Unmarshal(data, &out)
		}
	}
	return out
}

func callToolResult(result *Result) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(result.Content))
	for _, block := range result.Content {
		if block.Type == "text" {
			content = append(content, &mcp.TextContent{Text: block.Text})
		}
	}
	if len(content) == 0 {
		content = append(content, &mcp.TextContent{Text: result.Text()})
	}
	return &mcp.CallToolResult{Content: content, IsError: result.IsError()}
}

func loggingMiddleware(log zerolog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			if err != nil {
				log.Warn().Err(err).Str("mcp_method", method).Dur("duration", time.Since(start)).Msg("MCP request failed")
			} else {
				log.Debug().Str("mcp_method", method).Dur("duration", time.Since(start)).Msg("MCP request handled")
			}
			return result, err
		}
	}
}
