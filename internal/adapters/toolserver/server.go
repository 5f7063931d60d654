// Package toolserver serves the tool registry over HTTP.
package toolserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/bnema/halo-bridge/internal/logging"
	"github.com/bnema/halo-bridge/internal/tools"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultAddr            = "127.0.0.1:8765"
	defaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 10 * time.Second
)

type Config struct {
	Addr     string
	Registry *tools.Registry
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	// Startup runs once before the listener accepts requests. A failure is logged, not fatal.
	Startup func(ctx context.Context) error
	Logger  *zap.Logger
}

type Server struct {
	router   *gin.Engine
	server   *http.Server
	registry *tools.Registry
	startup  func(ctx context.Context) error
	logger   *zap.Logger
}

type callResponse struct {
	Tool   string `json:"tool"`
	Result any    `json:"result"`
}

type errorResponse struct {
	Error *tools.ToolError `json:"error"`
}

func NewServer(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	logger := cfg.Logger
	logger = logging.OrNop(logger)
	addr := cfg.Addr
	if addr == "" {
		addr = defaultAddr
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	s := &Server{
		router:   router,
		registry: cfg.Registry,
		startup:  cfg.Startup,
		logger:   logger,
	}

	router.GET("/healthz", s.handleHealth)
	router.GET("/tools", s.handleListTools)
	router.POST("/tools/:name", s.handleCallTool)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	s.server = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Addr() string {
	return s.server.Addr
}

// Run listens on the configured address until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.server.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve runs the startup hook, then serves on listener until ctx is canceled and shuts down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s.startup != nil {
		if err := s.startup(ctx); err != nil {
			s.logger.Warn("startup session setup failed; tools that need auth will report it", zap.Error(err))
		} else {
			s.logger.Info("startup session setup succeeded")
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("tool server listening", zap.String("addr", listener.Addr().String()))
		serveErr <- s.server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve tools: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down tool server")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown tool server: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": s.registry.List()})
}

func (s *Server) handleCallTool(c *gin.Context) {
	name := c.Param("name")

	args := map[string]any{}
	if err := c.ShouldBindJSON(&args); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: tools.NewToolError(name, fmt.Sprintf("decode arguments: %v", err), tools.CodeValidationError),
		})
		return
	}

	result, err := s.registry.Call(c.Request.Context(), name, args)
	if err != nil {
		var toolErr *tools.ToolError
		if !errors.As(err, &toolErr) {
			toolErr = tools.NewToolError(name, err.Error(), tools.CodeExecutionError)
		}
		c.JSON(statusForCode(toolErr.Code), errorResponse{Error: toolErr})
		return
	}

	c.JSON(http.StatusOK, callResponse{Tool: name, Result: result})
}

func statusForCode(code string) int {
	switch code {
	case tools.CodeUnknownTool:
		return http.StatusNotFound
	case tools.CodeValidationError, tools.CodeLocalIOError:
		return http.StatusBadRequest
	case tools.CodeAuthExpired:
		return http.StatusUnauthorized
	case tools.CodeUploadError, tools.CodeSubmissionError:
		return http.StatusUnprocessableEntity
	case tools.CodeAPIError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
