package handler

import (
	"net/http"
)

// Join handles GET /codes/{code} requests.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		h.writeError(w, http.StatusBadRequest, "validation_error", "code is required")
		return
	}

	session, err := h.service.Join(r.Context(), code)
	if err != nil {
		h.writeLookupError(w, r, err, "join session")
		return
	}

	h.writeJSON(w, http.StatusOK, newSessionResponse(session))
}
