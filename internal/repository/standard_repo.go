package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"content-review-api/internal/model"
)

type StandardRepository struct {
	pool *pgxpool.Pool
}

func NewStandardRepository(pool *pgxpool.Pool) *StandardRepository {
	return &StandardRepository{pool: pool}
}

// ListActive returns every standard with status "active". An empty result is
// not an error here; the analysis service decides what that means.
func (r *StandardRepository) ListActive(ctx context.Context) ([]model.ContentStandard, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, domain, term_definition, guidance,
		        correct_examples, incorrect_examples, status
		 FROM content_standards WHERE status = $1`, model.StandardStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active standards: %w", err)
	}
	defer rows.Close()

	standards := make([]model.ContentStandard, 0)
	for rows.Next() {
		var s model.ContentStandard
		if err := rows.Scan(&s.ID, &s.Title, &s.Domain, &s.TermDefinition, &s.Guidance,
			&s.CorrectExamples, &s.IncorrectExamples, &s.Status); err != nil {
			return nil, fmt.Errorf("scan standard: %w", err)
		}
		standards = append(standards, s)
	}
	return standards, rows.Err()
}
