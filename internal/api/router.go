package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter builds the HTTP surface: the image endpoint, health and
// metrics, wrapped in CORS and panic recovery.
func NewRouter(s *Server) http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestMiddleware)

	r.HandleFunc("/health", s.HealthHandler).Methods("GET")
	r.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	r.HandleFunc("/api/qr", s.QRImageHandler).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{s.cfg.AllowedOrigin}),
		handlers.AllowedMethods([]string{"GET", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-API-Key"}),
	)
	return handlers.RecoveryHandler()(cors(r))
}
