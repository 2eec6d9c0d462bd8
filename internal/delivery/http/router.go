package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"festregistry/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// Method checks live in the controllers so non-matching verbs still get the
// standard response envelope.
func NewRouter(
	registration *controllers.RegistrationController,
	stats *controllers.StatsController,
	contact *controllers.ContactController,
	db *sql.DB,
) *http.ServeMux {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/register", registration.Register)
	mux.HandleFunc("/stats", stats.GetStats)
	mux.HandleFunc("/contact", contact.Submit)

	// Operational endpoints
	mux.HandleFunc("/healthz", healthz(db))
	mux.Handle("/metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func healthz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db unreachable"))
			return
		}
		_, _ = w.Write([]byte("ok"))
	}
}
