package tidio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amoylab/tidio-mcp/internal/common/cnst"
	"github.com/amoylab/tidio-mcp/internal/common/config"
	"github.com/amoylab/tidio-mcp/pkg/metrics"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Client performs authenticated calls against the Tidio OpenAPI
type Client struct {
	cfg     config.TidioConfig
	http    *http.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http client. Its transport is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for request logs
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics records every upstream call in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a Client. Missing credentials fall back to the placeholder
// values, which makes every call fail authentication upstream.
func New(cfg config.TidioConfig, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = cnst.TidioBaseURL
	}
	if cfg.ClientID == "" {
		cfg.ClientID = cnst.PlaceholderClientID
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = cnst.PlaceholderClientSecret
	}

	c := &Client{
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{
			Timeout: cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return cnst.SpanUpstreamRequest + " " + r.URL.Path
				}),
			),
		}
	}
	return c
}

// Get issues a GET request for path with the given query
func (c *Client) Get(ctx context.Context, path string, query Query) (json.RawMessage, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Do performs req and returns the response body as JSON. Errors are either
// *UpstreamError or *TransportError.
func (c *Client) Do(ctx context.Context, req *Request) (json.RawMessage, error) {
	method := req.method()
	target := req.url(c.cfg.BaseURL)

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &TransportError{Err: fmt.Errorf("failed to marshal request body: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	httpReq.Header.Set(cnst.HeaderClientID, c.cfg.ClientID)
	httpReq.Header.Set(cnst.HeaderClientSecret, c.cfg.ClientSecret)
	httpReq.Header.Set(cnst.HeaderAccept, cnst.AcceptVersion)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.observe(method, 0, start)
		c.logger.Debug("tidio request failed",
			zap.String("method", method),
			zap.String("path", httpReq.URL.Path),
			zap.Error(err))
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(method, 0, start)
		return nil, &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	c.observe(method, resp.StatusCode, start)

	c.logger.Debug("tidio request done",
		zap.String("method", method),
		zap.String("path", httpReq.URL.Path),
		zap.String("query", httpReq.URL.RawQuery),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       data,
		}
	}
	return decodeBody(data), nil
}

func (c *Client) observe(method string, statusCode int, start time.Time) {
	if c.metrics != nil {
		c.metrics.UpstreamDone(method, statusCode, start)
	}
}

// statusText prefers the reason phrase sent by the server
func statusText(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
