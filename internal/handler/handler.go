package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"classcode/internal/domain"
	"classcode/internal/logger"
)

// SessionService defines the service interface.
// This allows testing handlers without real service implementation.
type SessionService interface {
	Create(ctx context.Context, label string, ttl time.Duration) (*domain.Session, error)
	Join(ctx context.Context, code string) (*domain.Session, error)
	GetStats(ctx context.Context, code string) (*domain.Session, error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	service SessionService
	baseURL string
	logger  *slog.Logger
}

// New creates a new Handler. A nil logger discards output.
func New(service SessionService, baseURL string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		service: service,
		baseURL: baseURL,
		logger:  log,
	}
}

// JoinURL is where students go to join the session behind code.
func (h *Handler) JoinURL(code string) string {
	return h.baseURL + "/codes/" + code
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// writeLookupError maps errors from looking up a session by code.
func (h *Handler) writeLookupError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCode):
		h.writeError(w, http.StatusBadRequest, "invalid_code", "code must be 6 characters from the class code alphabet")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrExpired):
		h.writeError(w, http.StatusNotFound, "not_found", "code not found or expired")
	default:
		h.logger.ErrorContext(r.Context(), "failed to "+action, logger.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to "+action)
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
