package middleware

import (
	"net/http"
	"strconv"
	"time"
)

const ProcessingTimeHeader = "X-Processing-Time-Micros"

// Timing is a middleware that adds X-Processing-Time-Micros header to all responses.
// The header value is the time taken to process the request in microseconds.
func Timing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := newResponseRecorder(w, func(h http.Header) {
			h.Set(ProcessingTimeHeader, strconv.FormatInt(time.Since(start).Microseconds(), 10))
		})

		next.ServeHTTP(rec, r)
	})
}
