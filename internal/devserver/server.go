package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/alexanderramin/planner/internal/domain"
)

// Server serves the dashboard API under /api.
type Server struct {
	echo   *echo.Echo
	logger *slog.Logger
}

func New(store *Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = domain.NewValidator()
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	h := &handlers{store: store}
	g := e.Group("/api")
	g.GET("/projects", h.listProjects)
	g.POST("/projects", h.createProject)
	g.GET("/projects/:id", h.getProject)
	g.PUT("/projects/:id", h.updateProject)
	g.DELETE("/projects/:id", h.deleteProject)
	g.GET("/projects/:id/tasks", h.listProjectTasks)
	g.GET("/projects/:id/strategy-history", h.strategyHistory)
	g.POST("/tasks", h.createTask)
	g.PUT("/tasks/:id", h.updateTask)
	g.DELETE("/tasks/:id", h.deleteTask)
	g.GET("/tasks/:id/history", h.taskHistory)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return &Server{echo: e, logger: logger}
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.echo,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("dev server shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("dev server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("dev server shutdown: %w", err)
	}
	return nil
}

// requestLogger logs each request at debug level, and failures at warn.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			status := c.Response().Status
			level := slog.LevelDebug
			if status >= http.StatusBadRequest {
				level = slog.LevelWarn
			}
			logger.Log(c.Request().Context(), level, "http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return nil
		}
	}
}
