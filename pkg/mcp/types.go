package mcp

import (
	"bytes"
	"encoding/json"
)

type (
	// JSONRPCBaseResult carries the envelope fields shared by every reply.
	// ID is kept raw so that it is echoed back byte for byte.
	JSONRPCBaseResult struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
	}

	// JSONRPCRequest represents an incoming JSON-RPC request or notification
	JSONRPCRequest struct {
		// JSONRPC version, must be "2.0"
		JSONRPC string `json:"jsonrpc"`
		// A uniquely identifying ID for a request in JSON-RPC; absent for notifications
		Id json.RawMessage `json:"id,omitempty"`
		// The method to be invoked
		Method string `json:"method"`
		// The parameters to be passed to the method
		Params json.RawMessage `json:"params,omitempty"`
	}

	// JSONRPCResponse represents a JSON-RPC response
	JSONRPCResponse struct {
		JSONRPCBaseResult
		Result any `json:"result"`
	}

	JSONRPCErrorSchema struct {
		JSONRPCBaseResult
		Error JSONRPCError `json:"error"`
	}

	// JSONRPCError represents an error in a JSON-RPC response
	JSONRPCError struct {
		// The error type that occurred
		Code int `json:"code"`
		// A short description of the error
		Message string `json:"message"`
		// Additional information about the error
		Data any `json:"data,omitempty"`
	}

	// CallToolParams represents parameters for a tools/call request
	CallToolParams struct {
		// The name of the tool to call
		Name string `json:"name"`
		// The arguments to pass to the tool
		Arguments json.RawMessage `json:"arguments,omitempty"`
	}
)

var nullID = json.RawMessage("null")

// IsNotification reports whether the request carries no id
func (r JSONRPCRequest) IsNotification() bool {
	return len(r.Id) == 0
}

// NewJSONRPCBaseResult builds the envelope for a reply to id; a missing id becomes null
func NewJSONRPCBaseResult(id json.RawMessage) JSONRPCBaseResult {
	if len(bytes.TrimSpace(id)) == 0 {
		id = nullID
	}
	return JSONRPCBaseResult{JSONRPC: JSPNRPCVersion, ID: id}
}

// NewJSONRPCResponse wraps result into a response for id
func NewJSONRPCResponse(id json.RawMessage, result any) JSONRPCResponse {
	return JSONRPCResponse{JSONRPCBaseResult: NewJSONRPCBaseResult(id), Result: result}
}

// NewJSONRPCError builds an error response for id
func NewJSONRPCError(id json.RawMessage, code int, message string) JSONRPCErrorSchema {
	return JSONRPCErrorSchema{
		JSONRPCBaseResult: NewJSONRPCBaseResult(id),
		Error: JSONRPCError{
			Code:    code,
			Message: message,
		},
	}
}
