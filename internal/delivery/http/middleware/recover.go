package middleware

import (
	"log/slog"
	"net/http"

	"festregistry/internal/delivery/http/helpers"
)

// Recover turns a handler panic into a well-formed SYSTEM_ERROR envelope
// instead of a dropped connection. Full detail goes to the operational log
// only.
func Recover(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "handler panic",
					"method", r.Method, "path", r.URL.Path, "panic", rec)
				helpers.WriteError(w, http.StatusInternalServerError,
					"internal system error, please try again", helpers.CodeSystemError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
