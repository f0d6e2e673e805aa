package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"content-review-api/internal/model"
	"content-review-api/pkg/apierror"
)

// tokenBytes gives 256 bits of entropy, encoded to 64 hex characters.
const tokenBytes = 32

type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

type TokenStore interface {
	Store(ctx context.Context, token string, userID string, expiresAt time.Time) error
	Authenticate(ctx context.Context, token string) (model.AuthUser, error)
}

type AuthService struct {
	users    UserFinder
	tokens   TokenStore
	tokenTTL time.Duration
}

func NewAuthService(users UserFinder, tokens TokenStore, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, tokens: tokens, tokenTTL: tokenTTL}
}

// Login checks credentials and mints a fresh opaque token. An unknown
// username and a wrong password produce the exact same error so the endpoint
// cannot be used for user enumeration. Every successful call inserts a new
// token row; existing tokens are never reused.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.LoginResponse, error) {
	if username == "" || password == "" {
		return model.LoginResponse{}, apierror.Validation("Username and password required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.LoginResponse{}, invalidCredentials()
	}
	if err != nil {
		return model.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.LoginResponse{}, invalidCredentials()
	}

	token, err := generateToken()
	if err != nil {
		return model.LoginResponse{}, err
	}

	expiresAt := time.Now().UTC().Add(s.tokenTTL)
	if err := s.tokens.Store(ctx, token, user.ID, expiresAt); err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{Token: token, User: user.Public()}, nil
}

// VerifyToken is the single token-validation path: the verify endpoint and
// the analyze endpoint both go through it via the auth middleware.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (model.AuthUser, error) {
	return s.tokens.Authenticate(ctx, token)
}

func invalidCredentials() error {
	return apierror.Auth("Invalid username or password")
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
