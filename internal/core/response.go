package core

import (
	"encoding/json"
	"io"

	"github.com/amoylab/tidio-mcp/pkg/mcp"

	"go.uber.org/zap"
)

// sendProtocolError sends a protocol-level error response
func (s *Server) sendProtocolError(out io.Writer, id json.RawMessage, message string, code int) {
	s.sendResponse(out, id, mcp.NewJSONRPCError(id, code, message))
}

// sendResponse writes response as a single line
func (s *Server) sendResponse(out io.Writer, id json.RawMessage, response any) {
	data, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("failed to marshal response", zap.Error(err))
		data, _ = json.Marshal(mcp.NewJSONRPCError(id, mcp.ErrorCodeInternalError, "Failed to marshal response"))
	}
	s.writeLine(out, data)
}

// writeLine writes one message per line; concurrent writers never interleave
func (s *Server) writeLine(out io.Writer, data []byte) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := out.Write(append(data, '\n')); err != nil {
		s.logger.Error("failed to write response", zap.Error(err))
	}
}
