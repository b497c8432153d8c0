package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"classcode/internal/handler"
	"classcode/internal/logger"
	"classcode/internal/middleware"
)

// Config holds server configuration.
type Config struct {
	Port            int
	ShutdownTimeout time.Duration
	BaseURL         string
	// CleanupInterval is how often expired sessions are purged. Zero disables it.
	CleanupInterval time.Duration
}

// Cleaner purges expired sessions.
type Cleaner interface {
	Cleanup(ctx context.Context) (int64, error)
}

// Option configures a Server.
type Option func(*Server)

// WithSessionService enables the /codes endpoints.
func WithSessionService(svc handler.SessionService) Option {
	return func(s *Server) { s.service = svc }
}

// WithCleaner runs c every Config.CleanupInterval while the server runs.
func WithCleaner(c Cleaner) Option {
	return func(s *Server) { s.cleaner = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server represents the HTTP server.
type Server struct {
	cfg        Config
	httpServer *http.Server
	router     chi.Router
	service    handler.SessionService
	cleaner    Cleaner
	logger     *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(
		middleware.RequestID,
		middleware.Timing,
		middleware.AccessLog(s.logger),
	)
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handleHealth)

	if s.service == nil {
		return
	}
	h := handler.New(s.service, s.cfg.BaseURL, s.logger)
	s.router.Post("/codes", h.Create)
	s.router.Get("/codes/{code}", h.Join)
	s.router.Get("/codes/{code}/stats", h.Stats)
	s.router.Get("/codes/{code}/qr", h.QR)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(handler.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler exposes the routed handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server. This method blocks until the server is stopped.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Run starts the server and blocks until a shutdown signal is received.
// It handles SIGINT and SIGTERM for graceful shutdown.
// The provided context can also be used to trigger shutdown.
func (s *Server) Run(ctx context.Context) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	s.logger.Info("server started", slog.Int("port", s.cfg.Port))

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go s.runCleanup(cleanupCtx)

	select {
	case sig := <-sigChan:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	case <-ctx.Done():
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
	stopCleanup()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) runCleanup(ctx context.Context) {
	if s.cleaner == nil || s.cfg.CleanupInterval <= 0 {
		return
	}

	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.cleaner.Cleanup(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("cleanup failed", logger.Error(err))
			}
		}
	}
}
