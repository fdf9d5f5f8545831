package cnst

const (
	// TidioMCPYaml is the default configuration file name
	TidioMCPYaml = "tidio-mcp.yaml"
)

const (
	LoggerOutputStderr = "stderr"
	LoggerOutputFile   = "file"

	LoggerFormatJSON    = "json"
	LoggerFormatConsole = "console"
)

const (
	TraceProtocolGRPC = "grpc"
	TraceProtocolHTTP = "http"
)
