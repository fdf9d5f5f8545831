package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/amoylab/tidio-mcp/internal/common/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry     *prometheus.Registry
	namespace    string
	mcpReqCnt    *prometheus.CounterVec
	mcpReqDur    *prometheus.HistogramVec
	mcpReqInfl   *prometheus.GaugeVec
	toolExecCnt  *prometheus.CounterVec
	toolExecDur  *prometheus.HistogramVec
	toolExecInfl *prometheus.GaugeVec
	upstreamCnt  *prometheus.CounterVec
	upstreamDur  *prometheus.HistogramVec
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	r := prometheus.NewRegistry()
	// Register standard process and Go collectors
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	mcpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "mcp_requests_total"}, []string{"method"})
	mcpReqDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "mcp_request_duration_seconds", Buckets: buckets}, []string{"method"})
	mcpReqInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "mcp_requests_inflight"}, []string{"method"})
	r.MustRegister(mcpReqCnt, mcpReqDur, mcpReqInfl)

	toolExecCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "tool_execution_total"}, []string{"tool_name", "status"})
	toolExecDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "tool_execution_duration_seconds", Buckets: buckets}, []string{"tool_name", "status"})
	toolExecInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "tool_execution_inflight_requests"}, []string{"tool_name"})
	r.MustRegister(toolExecCnt, toolExecDur, toolExecInfl)

	// status is the http status code, or "transport_error" when no response arrived
	upstreamCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "upstream_requests_total"}, []string{"method", "status"})
	upstreamDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "upstream_request_duration_seconds", Buckets: buckets}, []string{"method", "status"})
	r.MustRegister(upstreamCnt, upstreamDur)

	return &Metrics{
		registry:     r,
		namespace:    ns,
		mcpReqCnt:    mcpReqCnt,
		mcpReqDur:    mcpReqDur,
		mcpReqInfl:   mcpReqInfl,
		toolExecCnt:  toolExecCnt,
		toolExecDur:  toolExecDur,
		toolExecInfl: toolExecInfl,
		upstreamCnt:  upstreamCnt,
		upstreamDur:  upstreamDur,
	}
}

func (m *Metrics) McpReqStart(method string) {
	m.mcpReqInfl.WithLabelValues(method).Inc()
}

func (m *Metrics) McpReqDone(method string, since time.Time) {
	m.mcpReqCnt.WithLabelValues(method).Inc()
	m.mcpReqDur.WithLabelValues(method).Observe(time.Since(since).Seconds())
	m.mcpReqInfl.WithLabelValues(method).Dec()
}

func (m *Metrics) ToolExecStart(toolName string) {
	m.toolExecInfl.WithLabelValues(toolName).Inc()
}

func (m *Metrics) ToolExecDone(toolName string, since time.Time, status *string) {
	m.toolExecCnt.WithLabelValues(toolName, *status).Inc()
	m.toolExecDur.WithLabelValues(toolName, *status).Observe(time.Since(since).Seconds())
	m.toolExecInfl.WithLabelValues(toolName).Dec()
}

// UpstreamDone records one upstream call; statusCode 0 means no response was received
func (m *Metrics) UpstreamDone(method string, statusCode int, since time.Time) {
	status := "transport_error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	m.upstreamCnt.WithLabelValues(method, status).Inc()
	m.upstreamDur.WithLabelValues(method, status).Observe(time.Since(since).Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
