package cnst

const (
	// AppName is the name reported to MCP hosts during initialization
	AppName = "tidio-mcp"
	// CommandName is the name of the cli binary
	CommandName = "tidio-mcp"
)
