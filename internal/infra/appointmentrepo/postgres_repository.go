package appointmentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/wellness-hub/internal/domain/appointment"
	"github.com/yanqian/wellness-hub/pkg/util"
)

const uniqueViolation = "23505"

// PostgresRepository persists appointments. A unique index on
// (counselor_id, date, slot) guards double bookings.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Insert(ctx context.Context, a appointment.Appointment) error {
	date, err := time.Parse(util.DayLayout, a.Date)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO appointments (id, user_id, counselor_id, counselor_name, date, slot, reason, name, email, phone, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, a.ID, a.UserID, a.CounselorID, a.CounselorName, date, a.Slot, a.Reason, a.Name, a.Email, a.Phone, a.Notes, a.Status, a.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return appointment.ErrSlotTaken
	}
	return err
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]appointment.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, counselor_id, counselor_name, date, slot, reason, name, email, phone, notes, status, created_at
		FROM appointments
		WHERE user_id = $1
		ORDER BY date ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []appointment.Appointment
	for rows.Next() {
		var a appointment.Appointment
		var date time.Time
		if err := rows.Scan(&a.ID, &a.UserID, &a.CounselorID, &a.CounselorName, &date, &a.Slot, &a.Reason,
			&a.Name, &a.Email, &a.Phone, &a.Notes, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Date = date.Format(util.DayLayout)
		a.CreatedAt = a.CreatedAt.UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) BookedSlots(ctx context.Context, counselorID int, date string) ([]string, error) {
	day, err := time.Parse(util.DayLayout, date)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `SELECT slot FROM appointments WHERE counselor_id = $1 AND date = $2`, counselorID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, err
		}
		out = append(out, slot)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, userID int64, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

var _ appointment.Repository = (*PostgresRepository)(nil)
