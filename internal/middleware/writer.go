package middleware

import "net/http"

// responseRecorder tracks what a handler wrote. beforeHeader runs once,
// just before the status line goes out, so it can still add headers.
type responseRecorder struct {
	http.ResponseWriter
	status       int
	bytes        int
	wroteHeader  bool
	beforeHeader func(http.Header)
}

func newResponseRecorder(w http.ResponseWriter, beforeHeader func(http.Header)) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, status: http.StatusOK, beforeHeader: beforeHeader}
}

func (w *responseRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		if w.beforeHeader != nil {
			w.beforeHeader(w.Header())
		}
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
