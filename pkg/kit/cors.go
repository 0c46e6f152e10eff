package kit

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets any origin call any route. Credentials are never allowed with a
// wildcard origin.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-Id", "X-Trace-ID"},
		MaxAge:         300,
	})
}
