package core

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/amoylab/tidio-mcp/internal/common/cnst"
	"github.com/amoylab/tidio-mcp/pkg/mcp"
	"github.com/amoylab/tidio-mcp/pkg/trace"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ServeStdio reads newline delimited JSON-RPC messages from in and writes one
// line per response to out. Requests run concurrently; notifications are
// handled in arrival order. It returns once in is exhausted or ctx is done,
// after every in-flight request has been answered.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go readLines(ctx, in, lines, readErr)

	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)

	s.logger.Info("serving mcp over stdio", zap.Int("max_concurrency", s.maxConcurrency))
	for {
		select {
		case <-ctx.Done():
			_ = g.Wait()
			s.logger.Info("stdio server stopped", zap.Error(ctx.Err()))
			return nil
		case line, ok := <-lines:
			if !ok {
				_ = g.Wait()
				select {
				case err := <-readErr:
					return fmt.Errorf("failed to read stdin: %w", err)
				default:
				}
				s.logger.Info("stdin closed, stdio server stopped")
				return nil
			}
			s.dispatchLine(ctx, &g, line, out)
		}
	}
}

func readLines(ctx context.Context, in io.Reader, lines chan<- []byte, readErr chan<- error) {
	defer close(lines)
	reader := bufio.NewReader(in)
	for {
		line, err := reader.ReadBytes('\n')
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			select {
			case lines <- trimmed:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr <- err
			}
			return
		}
	}
}

func (s *Server) dispatchLine(ctx context.Context, g *errgroup.Group, line []byte, out io.Writer) {
	var req mcp.JSONRPCRequest
	if err := json.Unmarshal(line, &req); err != nil {
		code, message := mcp.ErrorCodeParseError, "Parse error"
		if json.Valid(line) {
			code, message = mcp.ErrorCodeInvalidRequest, "Invalid Request"
		}
		s.logger.Warn("invalid json-rpc message", zap.Error(err))
		s.sendProtocolError(out, nil, message, code)
		return
	}

	if req.IsNotification() {
		s.handleRequest(ctx, req, line, out)
		return
	}
	g.Go(func() error {
		s.handleRequest(ctx, req, line, out)
		return nil
	})
}

func (s *Server) handleRequest(ctx context.Context, req mcp.JSONRPCRequest, raw []byte, out io.Writer) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.McpReqStart(req.Method)
		defer s.metrics.McpReqDone(req.Method, start)
	}

	span := trace.Tracer(cnst.TraceCore).Start(ctx, cnst.SpanMCPMethodPrefix+req.Method).
		WithAttrs(attribute.String(cnst.AttrMCPMethod, req.Method))
	defer span.End()

	if req.Method == mcp.ToolsCall {
		var params mcp.CallToolParams
		if err := json.Unmarshal(req.Params, &params); err == nil && !s.dispatcher.Has(params.Name) {
			// the SDK would answer with a protocol error; hosts expect a regular result
			res := s.dispatcher.Handle(span.Ctx, params.Name, nil)
			s.sendResponse(out, req.Id, mcp.NewJSONRPCResponse(req.Id, res.ToolResult()))
			return
		}
	}

	resp := s.mcp.HandleMessage(span.Ctx, raw)
	if resp == nil {
		return
	}
	s.sendResponse(out, req.Id, resp)
}
