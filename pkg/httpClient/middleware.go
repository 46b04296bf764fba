package httpClient

import (
	"net/http"

	"github.com/google/uuid"
)

// TraceMiddleware makes sure every request carries X-Trace-ID, reusing the
// incoming header when present, and echoes it on the response.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(HeaderTraceID)
		if traceID == "" {
			traceID = uuid.New().String()
			r.Header.Set(HeaderTraceID, traceID)
		}

		ctx := WithTraceID(r.Context(), traceID)
		w.Header().Set(HeaderTraceID, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
