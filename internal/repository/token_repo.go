package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"content-review-api/internal/model"
)

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Store(ctx context.Context, token string, userID string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO access_tokens (token, user_id, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		token, userID, time.Now().UTC(), expiresAt)
	if err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to its owner in a single query. The
// expires_at predicate makes expired and unknown tokens indistinguishable:
// both come back as model.ErrTokenNotFound.
func (r *TokenRepository) Authenticate(ctx context.Context, token string) (model.AuthUser, error) {
	var u model.AuthUser
	err := r.pool.QueryRow(ctx,
		`SELECT u.id, u.username, u.display_name, u.role
		 FROM access_tokens t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.token = $1 AND t.expires_at > now()`, token).
		Scan(&u.ID, &u.Username, &u.DisplayName, &u.Role)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.AuthUser{}, model.ErrTokenNotFound
	}
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("authenticate token: %w", err)
	}
	return u, nil
}

// CleanExpired removes stale rows. Nothing in the request path calls this;
// it exists for operators since expired tokens otherwise accumulate forever.
func (r *TokenRepository) CleanExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM access_tokens WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("clean expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
