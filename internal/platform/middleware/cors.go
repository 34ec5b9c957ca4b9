package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the card frontend to call the API. With no origins every
// origin is allowed. Content-Disposition is exposed so browsers can read the
// vCard file name.
func CORS(origins ...string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-Id",
			"traceparent",
		},
		ExposedHeaders: []string{"Content-Disposition", "Link", "Location", "Retry-After", "X-Request-Id"},
		MaxAge:         300,
	})
}
