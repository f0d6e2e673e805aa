package handler

import (
	"encoding/json"
	"net/http"

	"content-review-api/internal/middleware"
	"content-review-api/internal/model"
	"content-review-api/internal/service"
	"content-review-api/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("Username and password required"))
		return
	}

	resp, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Verify reports the identity behind a bearer token. The token itself was
// already validated by the auth middleware; a missing identity here means
// the route was wired without RequireAuth.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Internal("Internal server error", "auth identity missing from context"))
		return
	}

	writeJSON(w, http.StatusOK, model.VerifyResponse{Valid: true, User: user})
}
