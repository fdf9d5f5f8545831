package core

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/amoylab/tidio-mcp/internal/common/cnst"
	"github.com/amoylab/tidio-mcp/internal/common/config"
	"github.com/amoylab/tidio-mcp/internal/tools"
	"github.com/amoylab/tidio-mcp/pkg/metrics"
	"github.com/amoylab/tidio-mcp/pkg/version"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const defaultMaxConcurrency = 16

type (
	// Server serves the Tidio tools over MCP
	Server struct {
		logger     *zap.Logger
		mcp        *server.MCPServer
		dispatcher *tools.Dispatcher
		metrics    *metrics.Metrics
		// maxConcurrency bounds the requests handled in parallel
		maxConcurrency int
		// writeMu serializes writes to the output stream
		writeMu sync.Mutex
	}
)

// NewServer creates a new MCP server exposing every tool of dispatcher.
// m may be nil.
func NewServer(logger *zap.Logger, dispatcher *tools.Dispatcher, m *metrics.Metrics, cfg config.ServerConfig) *Server {
	s := &Server{
		logger:         logger,
		dispatcher:     dispatcher,
		metrics:        m,
		maxConcurrency: cfg.MaxConcurrency,
	}
	if s.maxConcurrency <= 0 {
		s.maxConcurrency = defaultMaxConcurrency
	}

	s.mcp = server.NewMCPServer(
		cnst.AppName,
		version.Get(),
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithHooks(s.hooks()),
	)
	for _, tool := range dispatcher.Tools() {
		s.mcp.AddTool(tool, s.toolHandler(tool.Name))
	}
	return s
}

func (s *Server) hooks() *server.Hooks {
	hooks := &server.Hooks{}

	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcpgo.MCPMethod, message any) {
		s.logger.Debug("handling mcp request", zap.String("method", string(method)), zap.Any("id", id))
	})
	hooks.AddOnError(func(ctx context.Context, id any, method mcpgo.MCPMethod, message any, err error) {
		s.logger.Warn("mcp request failed", zap.String("method", string(method)), zap.Any("id", id), zap.Error(err))
	})
	hooks.AddBeforeInitialize(func(ctx context.Context, id any, message *mcpgo.InitializeRequest) {
		s.logger.Info("client initializing",
			zap.String("client", message.Params.ClientInfo.Name),
			zap.String("client_version", message.Params.ClientInfo.Version),
			zap.String("protocol_version", message.Params.ProtocolVersion))
	})
	hooks.AddBeforeCallTool(func(ctx context.Context, id any, message *mcpgo.CallToolRequest) {
		s.logger.Debug("calling tool", zap.String("tool", message.Params.Name), zap.Any("id", id))
	})
	return hooks
}

func (s *Server) toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		return s.dispatcher.Handle(ctx, name, toolArguments(request)).ToolResult(), nil
	}
}

// toolArguments returns the call arguments as a map; anything else yields nil
func toolArguments(request mcpgo.CallToolRequest) map[string]any {
	switch args := request.Params.Arguments.(type) {
	case map[string]any:
		return args
	case json.RawMessage:
		var m map[string]any
		if err := json.Unmarshal(args, &m); err != nil {
			return nil
		}
		return m
	}
	return nil
}
