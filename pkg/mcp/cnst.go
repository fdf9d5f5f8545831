package mcp

const JSPNRPCVersion = "2.0"

// Methods
const (
	ToolsCall = "tools/call"
)

// Error codes for MCP protocol
// Standard JSON-RPC error codes
const (
	ErrorCodeParseError     = -32700
	ErrorCodeInvalidRequest = -32600
	ErrorCodeInternalError  = -32603
)
