package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"content-review-api/internal/model"
)

type tokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (model.AuthUser, error)
}

type contextKey string

const authUserContextKey contextKey = "auth_user"

// AuthMiddleware resolves the bearer token to an identity. It is the single
// token-validation path shared by the verify and analyze endpoints.
type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeMessage(w, http.StatusUnauthorized, "No token provided")
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user, err := m.verifier.VerifyToken(r.Context(), token)
		if errors.Is(err, model.ErrTokenNotFound) {
			// Unknown and expired collapse into one response; nothing
			// about past tokens is disclosed.
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if err != nil {
			// A lookup fault is a server problem, not a bad token.
			slog.Error("token verification failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), authUserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserFromContext(ctx context.Context) (model.AuthUser, bool) {
	user, ok := ctx.Value(authUserContextKey).(model.AuthUser)
	return user, ok
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.MessageResponse{Message: message})
}
