package tools

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/amoylab/tidio-mcp/internal/common/cnst"
	"github.com/amoylab/tidio-mcp/pkg/metrics"
	"github.com/amoylab/tidio-mcp/pkg/trace"

	"github.com/google/uuid"
	"github.com/ifuryst/lol"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Dispatcher routes tool invocations to their handlers
type Dispatcher struct {
	api      API
	tools    []mcpgo.Tool
	handlers map[string]handlerFunc
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics records tool executions in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// NewDispatcher creates a Dispatcher serving Catalog() through api
func NewDispatcher(api API, opts ...Option) (*Dispatcher, error) {
	return newDispatcher(api, Catalog(), handlers, opts...)
}

func newDispatcher(api API, tools []mcpgo.Tool, table map[string]handlerFunc, opts ...Option) (*Dispatcher, error) {
	if err := checkRegistry(tools, table); err != nil {
		return nil, err
	}
	d := &Dispatcher{
		api:      api,
		tools:    tools,
		handlers: table,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// checkRegistry makes sure the catalog and the handler table name the same tools
func checkRegistry(tools []mcpgo.Tool, table map[string]handlerFunc) error {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	if uniq := lol.UniqSlice(names); len(uniq) != len(names) {
		return fmt.Errorf("%w: %v", cnst.ErrDuplicateToolName, duplicates(names))
	}

	listed := make(map[string]struct{}, len(names))
	for _, name := range names {
		listed[name] = struct{}{}
		if _, ok := table[name]; !ok {
			return fmt.Errorf("%w: %s", cnst.ErrUnboundTool, name)
		}
	}

	var unlisted []string
	for name := range table {
		if _, ok := listed[name]; !ok {
			unlisted = append(unlisted, name)
		}
	}
	if len(unlisted) > 0 {
		sort.Strings(unlisted)
		return fmt.Errorf("%w: %v", cnst.ErrUnlistedHandler, unlisted)
	}
	return nil
}

func duplicates(names []string) []string {
	seen := make(map[string]int, len(names))
	var dup []string
	for _, n := range names {
		seen[n]++
		if seen[n] == 2 {
			dup = append(dup, n)
		}
	}
	return dup
}

// Tools returns the catalog served by this dispatcher
func (d *Dispatcher) Tools() []mcpgo.Tool {
	return d.tools
}

// Has reports whether name is a known tool
func (d *Dispatcher) Has(name string) bool {
	_, ok := d.handlers[name]
	return ok
}

// Handle executes one invocation. It always returns a Result; panics in a
// handler are turned into an error result.
func (d *Dispatcher) Handle(ctx context.Context, name string, args map[string]any) (res Result) {
	invocationID := uuid.NewString()
	logger := d.logger.With(
		zap.String("tool", name),
		zap.String("invocation_id", invocationID),
	)

	span := trace.Tracer(cnst.TraceTools).Start(ctx, cnst.SpanToolExecute).
		WithAttrs(
			attribute.String(cnst.AttrMCPTool, name),
			attribute.String(cnst.AttrInvocationID, invocationID),
		)
	defer span.End()

	handler, ok := d.handlers[name]
	if !ok {
		res = Result{Err: errUnknownTool(name)}
		span.Fail(res.Err)
		logger.Warn("unknown tool requested")
		return res
	}

	start := time.Now()
	status := cnst.ToolStatusSuccess
	if d.metrics != nil {
		d.metrics.ToolExecStart(name)
		defer d.metrics.ToolExecDone(name, start, &status)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("tool handler panicked", zap.Any("panic", r), zap.Stack("stack"))
			res = Result{Err: fmt.Errorf("%v", r)}
		}
		if res.Err != nil {
			status = cnst.ToolStatusError
			span.Fail(res.Err)
			logger.Info("tool call failed", zap.Error(res.Err), zap.Duration("elapsed", time.Since(start)))
			return
		}
		logger.Debug("tool call succeeded", zap.Duration("elapsed", time.Since(start)))
	}()

	if args == nil {
		args = map[string]any{}
	}
	data, err := handler(span.Ctx, d.api, Args(args))
	if err != nil {
		return Result{Err: err}
	}
	return Result{Data: data}
}
