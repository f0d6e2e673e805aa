package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"content-review-api/internal/config"
	"content-review-api/internal/handler"
	"content-review-api/internal/middleware"
	"content-review-api/internal/model"
	"content-review-api/internal/router"
	"content-review-api/internal/service"
)

type fakeUsers struct {
	byUsername map[string]model.User
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (model.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

// fakeTokens is an in-memory token table with real expiry semantics, so a
// token minted by login is honored by verify and analyze until it expires.
type fakeTokens struct {
	users map[string]model.User
	rows  map[string]model.Token
}

func (f *fakeTokens) Store(_ context.Context, token string, userID string, expiresAt time.Time) error {
	f.rows[token] = model.Token{Token: token, UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeTokens) Authenticate(_ context.Context, token string) (model.AuthUser, error) {
	row, ok := f.rows[token]
	if !ok || !row.ExpiresAt.After(time.Now()) {
		return model.AuthUser{}, model.ErrTokenNotFound
	}
	for _, user := range f.users {
		if user.ID == row.UserID {
			return user.Public(), nil
		}
	}
	return model.AuthUser{}, model.ErrTokenNotFound
}

type fakeStandards struct {
	standards []model.ContentStandard
}

func (f *fakeStandards) ListActive(_ context.Context) ([]model.ContentStandard, error) {
	return f.standards, nil
}

type fakeRecorder struct {
	records []model.AnalysisRecord
}

func (f *fakeRecorder) Insert(_ context.Context, rec model.AnalysisRecord) error {
	f.records = append(f.records, rec)
	return nil
}

type fakeGenerator struct {
	response string
	calls    int
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.response, nil
}

type env struct {
	router    http.Handler
	tokens    *fakeTokens
	recorder  *fakeRecorder
	generator *fakeGenerator
}

func newEnv(t *testing.T, standards []model.ContentStandard) *env {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)

	users := map[string]model.User{
		"alice": {
			ID:           "11111111-1111-1111-1111-111111111111",
			Username:     "alice",
			PasswordHash: string(hash),
			DisplayName:  "Alice",
			Role:         "editor",
		},
	}

	tokens := &fakeTokens{users: users, rows: map[string]model.Token{}}
	recorder := &fakeRecorder{}
	generator := &fakeGenerator{response: `{"score": 90, "summary": "ok", "compliant": [], "violations": [], "recommendations": []}`}

	authService := service.NewAuthService(&fakeUsers{byUsername: users}, tokens, 24*time.Hour)
	analysisService := service.NewAnalysisService(&fakeStandards{standards: standards}, recorder, generator)

	cfg := &config.Config{CORSOrigins: []string{"*"}, RateLimitRPM: 10000, AuthRateLimitRPM: 10000}
	r := router.New(cfg,
		middleware.NewAuthMiddleware(authService),
		handler.NewAuthHandler(authService),
		handler.NewAnalysisHandler(analysisService),
	)

	return &env{router: r, tokens: tokens, recorder: recorder, generator: generator}
}

func defaultStandards() []model.ContentStandard {
	return []model.ContentStandard{{
		ID:     "std-tone",
		Title:  "Friendly Tone",
		Domain: "voice",
		Status: model.StandardStatusActive,
	}}
}

func (e *env) do(t *testing.T, method string, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func (e *env) login(t *testing.T) string {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/api/auth/login", model.LoginRequest{Username: "alice", Password: "correct"}, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var body model.LoginResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Token
}

func decodeMessage(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()

	var body model.MessageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Message
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("success returns token and public identity", func(t *testing.T) {
		e := newEnv(t, defaultStandards())

		resp := e.do(t, http.MethodPost, "/api/auth/login", model.LoginRequest{Username: "alice", Password: "correct"}, "")
		require.Equal(t, http.StatusOK, resp.Code)

		var body model.LoginResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Len(t, body.Token, 64)
		assert.Equal(t, "alice", body.User.Username)
		assert.Equal(t, "Alice", body.User.DisplayName)
		assert.Equal(t, "editor", body.User.Role)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		e := newEnv(t, defaultStandards())

		resp := e.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "alice"}, "")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "Username and password required", decodeMessage(t, resp))
	})

	t.Run("wrong password and unknown user return identical bodies", func(t *testing.T) {
		e := newEnv(t, defaultStandards())

		wrong := e.do(t, http.MethodPost, "/api/auth/login", model.LoginRequest{Username: "alice", Password: "wrong"}, "")
		unknown := e.do(t, http.MethodPost, "/api/auth/login", model.LoginRequest{Username: "mallory", Password: "correct"}, "")

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.JSONEq(t, `{"message":"Invalid username or password"}`, wrong.Body.String())
		assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	})

	t.Run("wrong verb returns 405", func(t *testing.T) {
		e := newEnv(t, defaultStandards())

		resp := e.do(t, http.MethodGet, "/api/auth/login", nil, "")
		assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
		assert.Equal(t, "Method not allowed", decodeMessage(t, resp))
	})
}

func TestVerifyEndpoint(t *testing.T) {
	t.Run("fresh login token verifies", func(t *testing.T) {
		e := newEnv(t, defaultStandards())
		token := e.login(t)

		resp := e.do(t, http.MethodGet, "/api/auth/verify", nil, token)
		require.Equal(t, http.StatusOK, resp.Code)

		var body model.VerifyResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.True(t, body.Valid)
		assert.Equal(t, "alice", body.User.Username)
	})

	t.Run("missing header returns 401", func(t *testing.T) {
		e := newEnv(t, defaultStandards())

		resp := e.do(t, http.MethodGet, "/api/auth/verify", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "No token provided", decodeMessage(t, resp))
	})

	t.Run("unknown token returns 401", func(t *testing.T) {
		e := newEnv(t, defaultStandards())

		resp := e.do(t, http.MethodGet, "/api/auth/verify", nil, "0000000000000000000000000000000000000000000000000000000000000000")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "Invalid or expired token", decodeMessage(t, resp))
	})

	t.Run("expired token is reported like an unknown one", func(t *testing.T) {
		e := newEnv(t, defaultStandards())
		token := e.login(t)

		row := e.tokens.rows[token]
		row.ExpiresAt = time.Now().Add(-time.Minute)
		e.tokens.rows[token] = row

		resp := e.do(t, http.MethodGet, "/api/auth/verify", nil, token)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "Invalid or expired token", decodeMessage(t, resp))
	})
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Run("returns the verdict and persists a record", func(t *testing.T) {
		e := newEnv(t, defaultStandards())
		token := e.login(t)

		resp := e.do(t, http.MethodPost, "/api/analyze", model.AnalyzeRequest{
			TextContent: "Welcome back",
			FrameName:   "Login Screen",
		}, token)
		require.Equal(t, http.StatusOK, resp.Code)

		var body model.Analysis
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, 90, body.Score)

		require.Len(t, e.recorder.records, 1)
		assert.Equal(t, "Login Screen", e.recorder.records[0].ImageName)
	})

	t.Run("auth is checked before input validation", func(t *testing.T) {
		e := newEnv(t, defaultStandards())

		resp := e.do(t, http.MethodPost, "/api/analyze", model.AnalyzeRequest{}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "No token provided", decodeMessage(t, resp))
	})

	t.Run("empty input with a valid token returns 400", func(t *testing.T) {
		e := newEnv(t, defaultStandards())
		token := e.login(t)

		resp := e.do(t, http.MethodPost, "/api/analyze", model.AnalyzeRequest{}, token)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "No text content provided", decodeMessage(t, resp))
		assert.Zero(t, e.generator.calls)
	})

	t.Run("no active standards returns 500 without calling the generator", func(t *testing.T) {
		e := newEnv(t, nil)
		token := e.login(t)

		resp := e.do(t, http.MethodPost, "/api/analyze", model.AnalyzeRequest{TextContent: "Welcome"}, token)
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Equal(t, "No content standards found", decodeMessage(t, resp))
		assert.Zero(t, e.generator.calls)
	})

	t.Run("unparsable model output still returns 200 with the fallback", func(t *testing.T) {
		e := newEnv(t, defaultStandards())
		e.generator.response = "no json here"
		token := e.login(t)

		resp := e.do(t, http.MethodPost, "/api/analyze", model.AnalyzeRequest{TextContent: "Welcome"}, token)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{
			"score": 50,
			"summary": "Analysis completed but response parsing failed",
			"compliant": [],
			"violations": [],
			"recommendations": ["Please try again"]
		}`, resp.Body.String())
		assert.Len(t, e.recorder.records, 1)
	})
}

func TestMissingAuthContextIsServerFault(t *testing.T) {
	// Handlers invoked without RequireAuth in front (a wiring mistake) must
	// report a server fault, not an auth failure.
	users := map[string]model.User{}
	authService := service.NewAuthService(&fakeUsers{byUsername: users}, &fakeTokens{users: users, rows: map[string]model.Token{}}, 24*time.Hour)
	analysisService := service.NewAnalysisService(&fakeStandards{standards: defaultStandards()}, &fakeRecorder{}, &fakeGenerator{})

	t.Run("verify", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
		resp := httptest.NewRecorder()

		handler.NewAuthHandler(authService).Verify(resp, req)

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.JSONEq(t, `{"message":"Internal server error"}`, resp.Body.String())
	})

	t.Run("analyze", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte(`{"textContent":"x"}`)))
		resp := httptest.NewRecorder()

		handler.NewAnalysisHandler(analysisService).Analyze(resp, req)

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.JSONEq(t, `{"message":"Internal server error"}`, resp.Body.String())
	})
}

func TestCORSAndOptions(t *testing.T) {
	paths := []string{"/api/auth/login", "/api/auth/verify", "/api/analyze"}

	t.Run("preflight returns 200 with CORS headers and no body", func(t *testing.T) {
		e := newEnv(t, defaultStandards())

		for _, path := range paths {
			req := httptest.NewRequest(http.MethodOptions, path, nil)
			req.Header.Set("Origin", "https://www.figma.com")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type, Authorization")

			resp := httptest.NewRecorder()
			e.router.ServeHTTP(resp, req)

			assert.Equal(t, http.StatusOK, resp.Code, path)
			assert.Empty(t, resp.Body.String(), path)
			assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"), path)
		}
	})

	t.Run("bare OPTIONS returns 200 with empty body", func(t *testing.T) {
		e := newEnv(t, defaultStandards())

		for _, path := range paths {
			resp := e.do(t, http.MethodOptions, path, nil, "")
			assert.Equal(t, http.StatusOK, resp.Code, path)
			assert.Empty(t, resp.Body.String(), path)
		}
	})
}
