package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func restoreGlobals(t *testing.T) {
	t.Helper()
	prevProvider := otel.GetTracerProvider()
	prevResource, prevHTTP, prevGRPC := newResource, newOTLPTraceHTTP, newOTLPTraceGRPC
	t.Cleanup(func() {
		otel.SetTracerProvider(prevProvider)
		newResource, newOTLPTraceHTTP, newOTLPTraceGRPC = prevResource, prevHTTP, prevGRPC
	})
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), &Config{}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_HTTP_NoopUsage(t *testing.T) {
	restoreGlobals(t)
	// Use HTTP protocol to avoid opening a gRPC connection in tests.
	cfg := &Config{
		Enabled:     true,
		ServiceName: "tidio-mcp-test",
		Protocol:    "http",
		Endpoint:    "http://localhost:4318",
		Insecure:    true,
		SamplerRate: 2.5, // clamped to 1.0
		Environment: "dev",
		Headers:     map[string]string{"x-test": "1"},
	}

	shutdown, err := InitTracing(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_GRPCUsesDefaultEndpoint(t *testing.T) {
	restoreGlobals(t)

	called := false
	newResource = func(ctx context.Context, options ...resource.Option) (*resource.Resource, error) {
		return resource.Default(), nil
	}
	newOTLPTraceGRPC = func(ctx context.Context, options ...otlptracegrpc.Option) (*otlptrace.Exporter, error) {
		called = true
		return nil, nil
	}

	shutdown, err := InitTracing(context.Background(), &Config{Enabled: true, SamplerRate: 0.5}, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_ExporterError(t *testing.T) {
	restoreGlobals(t)

	newResource = func(ctx context.Context, options ...resource.Option) (*resource.Resource, error) {
		return resource.Default(), nil
	}
	newOTLPTraceHTTP = func(ctx context.Context, options ...otlptracehttp.Option) (*otlptrace.Exporter, error) {
		return nil, errors.New("boom")
	}

	_, err := InitTracing(context.Background(), &Config{Enabled: true, Protocol: "http"}, zap.NewNop())
	assert.ErrorContains(t, err, "create exporter: boom")
}

func TestClampRate(t *testing.T) {
	assert.Equal(t, 0.0, clampRate(-1))
	assert.Equal(t, 0.25, clampRate(0.25))
	assert.Equal(t, 1.0, clampRate(3))
}

func TestBuilder_Start_WithAttrs_Fail_End(t *testing.T) {
	restoreGlobals(t)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sr),
		sdktrace.WithResource(resource.Empty()),
	)
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	scope := Tracer("trace-test").Start(context.Background(), "op")
	require.NotNil(t, scope)
	scope.WithAttrs(attribute.String("k", "v")).Fail(errors.New("bad"))
	scope.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("k", "v"))
}
