package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/custodia-labs/newsagg/internal/logger"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

// userIDKey is the echo context key holding the resolved user ID.
const userIDKey = "user_id"

// Server is the HTTP API.
type Server struct {
	echo  *echo.Echo
	ports *Ports
}

// NewServer creates an HTTP API server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if ports.Identity == nil {
		ports.Identity = HeaderIdentity{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURIPath: true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("%s %s %d %s", v.Method, v.URIPath, v.Status, v.Latency)
			return nil
		},
	}))

	s := &Server{echo: e, ports: ports}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api")

	api.GET("/articles", s.handleListArticles)
	api.GET("/articles/:id", s.handleGetArticle)

	if s.ports.Preferences != nil {
		user := api.Group("", s.requireUser)
		user.GET("/preferences", s.handleGetPreferences)
		user.POST("/preferences", s.handleSetPreferences)
		user.GET("/personalized-feed", s.handleFeed)
	}

	if s.ports.Ingestion != nil {
		api.POST("/ingest", s.handleIngest)
		api.GET("/ingest/latest", s.handleLatestRun)
	}

	if s.ports.Metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.ports.Metrics))
	}
}

// requireUser resolves the caller and stores the user ID on the context.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := s.ports.Identity.Resolve(c.Request())
		if err != nil {
			return failErr(c, "Unauthenticated", err)
		}
		c.Set(userIDKey, userID)
		return next(c)
	}
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}
