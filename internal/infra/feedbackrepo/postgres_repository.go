package feedbackrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/wellness-hub/internal/domain/feedback"
)

// PostgresRepository persists feedback in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Insert(ctx context.Context, entry feedback.Entry) (feedback.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO feedback (user_id, category, rating, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, category, rating, message, created_at
	`, entry.UserID, entry.Category, entry.Rating, entry.Message, entry.CreatedAt)
	return scanEntry(row)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]feedback.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, category, rating, message, created_at
		FROM feedback
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return scanAll(rows)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]feedback.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, category, rating, message, created_at
		FROM feedback
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	return scanAll(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (feedback.Entry, error) {
	var e feedback.Entry
	if err := row.Scan(&e.ID, &e.UserID, &e.Category, &e.Rating, &e.Message, &e.CreatedAt); err != nil {
		return feedback.Entry{}, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}

func scanAll(rows pgx.Rows) ([]feedback.Entry, error) {
	defer rows.Close()
	var out []feedback.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ feedback.Repository = (*PostgresRepository)(nil)
