package cnst

// Tracer names used across the service
const (
	// TraceCore is the tracer name for the MCP request loop
	TraceCore = "tidio-mcp/core"
	// TraceTools is the tracer name for tool dispatch
	TraceTools = "tidio-mcp/tools"
)

// Common span names and prefixes
const (
	// SpanMCPMethodPrefix prefixes spans for handling MCP methods
	SpanMCPMethodPrefix = "mcp.method."
	// SpanToolExecute represents executing a tool handler
	SpanToolExecute = "mcp.tool.execute"
	// SpanUpstreamRequest names the otelhttp client span for upstream calls
	SpanUpstreamRequest = "tidio.request"
)

// Common attribute keys
const (
	AttrMCPTool      = "mcp.tool"
	AttrMCPMethod    = "mcp.method"
	AttrInvocationID = "mcp.invocation_id"
)
