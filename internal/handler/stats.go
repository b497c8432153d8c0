package handler

import (
	"net/http"

	"classcode/internal/domain"
)

// Stats handles GET /codes/{code}/stats requests.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		h.writeError(w, http.StatusBadRequest, "validation_error", "code is required")
		return
	}

	session, err := h.service.GetStats(r.Context(), code)
	if err != nil {
		h.writeLookupError(w, r, err, "get stats")
		return
	}

	h.writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func newSessionResponse(s *domain.Session) SessionResponse {
	resp := SessionResponse{
		Code:      s.Code,
		Label:     s.Label,
		CreatedAt: formatTime(s.CreatedAt),
		ExpiresAt: formatTime(s.ExpiresAt),
		JoinCount: s.JoinCount,
	}

	// Only set LastJoinedAt if it's not zero
	if !s.LastJoinedAt.IsZero() {
		formatted := formatTime(s.LastJoinedAt)
		resp.LastJoinedAt = &formatted
	}
	return resp
}
