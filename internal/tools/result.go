package tools

import (
	"bytes"
	"encoding/json"
	"fmt"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// Result is the outcome of one tool invocation: either a JSON payload or an error
type Result struct {
	Data json.RawMessage
	Err  error
}

// Text renders the result the way hosts receive it: indented JSON on success,
// "Error: <message>" otherwise.
func (r Result) Text() string {
	if r.Err != nil {
		return fmt.Sprintf("Error: %s", r.Err.Error())
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Data, "", "  "); err != nil {
		return fmt.Sprintf("Error: %s", err.Error())
	}
	return buf.String()
}

// ToolResult wraps Text into a single text block. Failures are reported as
// content, isError stays false.
func (r Result) ToolResult() *mcpgo.CallToolResult {
	return mcpgo.NewToolResultText(r.Text())
}
