package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// MetricsServer exposes /health and /metrics while a decode run is active.
// It only reads prometheus collectors; decoder state is never shared with it.
type MetricsServer struct {
	Addr    string
	Started time.Time

	router *gin.Engine
	srv    *http.Server
	ln     net.Listener
	logger zerolog.Logger
	done   chan error
}

func NewMetricsServer(addr string, logger zerolog.Logger) *MetricsServer {
	RegisterMetrics()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(RequestMetricsMiddleware())

	s := &MetricsServer{
		Addr:    addr,
		Started: time.Now(),
		router:  r,
		logger:  logger.With().Str("component", "metrics").Logger(),
	}
	s.registerRoutes()
	return s
}

func (s *MetricsServer) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(s.Started).String(),
		})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *MetricsServer) Handler() http.Handler {
	return s.router
}

// Start binds the listener and serves in the background.
func (s *MetricsServer) Start() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.Addr = ln.Addr().String()
	s.srv = &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	s.done = make(chan error, 1)
	go func() {
		err := s.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()
	s.logger.Info().Str("addr", s.Addr).Msg("metrics server listening")
	return nil
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return err
	}
	return <-s.done
}
