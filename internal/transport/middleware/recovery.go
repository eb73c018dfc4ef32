package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	ctxlogger "github.com/frahmantamala/ticket-management/pkg/logger"
)

// RecoveryMiddleware converts panics into 500 responses. The panic
// value is logged with the stack but never echoed to the client.
func RecoveryMiddleware(fallback *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					lg := ctxlogger.From(r.Context())
					if lg == nil {
						lg = fallback
					}
					lg.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"url", r.URL.String(),
						"stack", string(debug.Stack()))

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error": "internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
