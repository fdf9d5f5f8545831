package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amoylab/tidio-mcp/internal/common/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestToolExecCounters(t *testing.T) {
	m := New(config.MetricsConfig{Namespace: "test"})

	status := "success"
	m.ToolExecStart("get_operators")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.toolExecInfl.WithLabelValues("get_operators")))
	m.ToolExecDone("get_operators", time.Now(), &status)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.toolExecCnt.WithLabelValues("get_operators", "success")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.toolExecInfl.WithLabelValues("get_operators")))
}

func TestMcpReqCounters(t *testing.T) {
	m := New(config.MetricsConfig{Namespace: "test"})

	m.McpReqStart("tools/list")
	m.McpReqDone("tools/list", time.Now())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.mcpReqCnt.WithLabelValues("tools/list")))
}

func TestUpstreamDone(t *testing.T) {
	m := New(config.MetricsConfig{Namespace: "test"})

	m.UpstreamDone(http.MethodGet, http.StatusNotFound, time.Now())
	m.UpstreamDone(http.MethodGet, 0, time.Now())

	assert.Equal(t, float64(1), testutil.ToFloat64(m.upstreamCnt.WithLabelValues("GET", "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.upstreamCnt.WithLabelValues("GET", "transport_error")))
}

func TestServerRoutes(t *testing.T) {
	m := New(config.MetricsConfig{Namespace: "test"})
	status := "error"
	m.ToolExecStart("get_tickets")
	m.ToolExecDone("get_tickets", time.Now(), &status)

	s := NewServer(zap.NewNop(), "127.0.0.1:0", m)

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `test_tool_execution_total{status="error",tool_name="get_tickets"} 1`)
}
