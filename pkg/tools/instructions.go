package tools

import _ "embed"

// SystemInstructions is the operating manual handed to the connected agent at
// initialize time. It defines the tool-calling workflow (field instructions
// before writes, lookups before filters, confirmation gates) and is served
// verbatim as the MCP server instructions.
//
//go:embed instructions.md
var SystemInstructions string
