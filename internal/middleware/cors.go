package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows credentialed cross-origin calls from exactly one configured
// origin. The request's Origin header is matched against the allowlist,
// never reflected back, so an unknown origin gets no
// Access-Control-Allow-Origin at all.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
