package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"content-review-api/internal/model"
)

type AnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

// Insert appends one analysis log row. The core only ever writes this table.
func (r *AnalysisRepository) Insert(ctx context.Context, rec model.AnalysisRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO content_analyses (user_id, image_name, result, overall_score, standards_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.UserID, rec.ImageName, rec.Result, rec.OverallScore, rec.StandardsCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert analysis record: %w", err)
	}
	return nil
}
