package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the design-tool plugin to call the API from any origin. The
// preflight answer must be a 200 with an empty body, not the library's
// default 204.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:       origins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", "Authorization"},
		MaxAge:               3600,
		AllowCredentials:     false,
		OptionsSuccessStatus: http.StatusOK,
	})

	return handler.Handler
}
