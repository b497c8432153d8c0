package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"classcode/internal/logger"
)

// Create handles POST /codes requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	label := strings.TrimSpace(req.Label)
	if err := validateLabel(label); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	// Zero lets the service apply its configured default.
	var ttl time.Duration
	if req.TTLSeconds != nil {
		if err := validateTTLSeconds(*req.TTLSeconds); err != nil {
			h.writeError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		ttl = time.Duration(*req.TTLSeconds) * time.Second
	}

	session, err := h.service.Create(r.Context(), label, ttl)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create session", logger.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to create class code")
		return
	}

	h.writeJSON(w, http.StatusCreated, CreateResponse{
		Code:      session.Code,
		JoinURL:   h.JoinURL(session.Code),
		Label:     session.Label,
		ExpiresAt: formatTime(session.ExpiresAt),
	})
}
