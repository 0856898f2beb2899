package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/sweetquest/sweetquest-backend/pkg/config"
)

// CORS builds the storefront CORS policy. Dev allows any origin so local
// frontends can hit the API directly.
func CORS(cfg *config.Config) func(http.Handler) http.Handler {
	allowedOrigins := []string{
		"https://sweetquest.ph",
		"https://www.sweetquest.ph",
	}
	if cfg.App.IsDev() {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id", "X-Session-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
