package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/amoylab/tidio-mcp/internal/common/cnst"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Server exposes /metrics and /health on a side listener. It never touches
// stdout, which belongs to the MCP stream.
type Server struct {
	logger *zap.Logger
	srv    *http.Server
}

// NewServer builds the listener for the given address
func NewServer(logger *zap.Logger, addr string, m *Metrics) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cnst.AppName))

	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		logger: logger,
		srv:    &http.Server{Addr: addr, Handler: router},
	}
}

// Handler returns the routed handler, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves in the background; listener failures are logged
func (s *Server) Start() {
	go func() {
		s.logger.Info("starting metrics listener", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics listener stopped", zap.Error(err))
		}
	}()
}

// Shutdown gracefully stops the listener
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
