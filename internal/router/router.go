package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"content-review-api/internal/config"
	"content-review-api/internal/handler"
	"content-review-api/internal/middleware"
	"content-review-api/internal/model"
	"content-review-api/pkg/apierror"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	analysisHandler *handler.AnalysisHandler,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	// A bare OPTIONS (no preflight headers, so the CORS layer passes it
	// through) still answers 200 with an empty body; every other verb
	// mismatch is a 405.
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		methodErr := apierror.MethodNotAllowed()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(methodErr.HTTPStatus)
		_ = json.NewEncoder(w).Encode(model.MessageResponse{Message: methodErr.Message})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", authHandler.Login)
		api.With(authMiddleware.RequireAuth).Get("/auth/verify", authHandler.Verify)
		api.With(authMiddleware.RequireAuth).Post("/analyze", analysisHandler.Analyze)
	})

	return r
}
