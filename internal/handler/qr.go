package handler

import (
	"net/http"
	"strconv"

	"github.com/skip2/go-qrcode"

	"classcode/internal/logger"
)

// QR handles GET /codes/{code}/qr requests, rendering the join URL as a PNG.
func (h *Handler) QR(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		h.writeError(w, http.StatusBadRequest, "validation_error", "code is required")
		return
	}

	size, err := parseQRSize(r.URL.Query().Get("size"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	session, err := h.service.GetStats(r.Context(), code)
	if err != nil {
		h.writeLookupError(w, r, err, "render qr code")
		return
	}

	png, err := qrcode.Encode(h.JoinURL(session.Code), qrcode.Medium, size)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode qr code", logger.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to render qr code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
