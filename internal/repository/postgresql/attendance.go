package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/haisanviet/backoffice-go/internal/domain/attendance"
	"github.com/haisanviet/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (user_id, date, type, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, date) DO UPDATE SET
			type = EXCLUDED.type,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, user_id, date, type, notes, created_at, updated_at
	`

	var saved attendance.Record
	err := q.QueryRow(ctx, query, rec.UserID, rec.Date, rec.Type, rec.Notes).Scan(
		&saved.ID, &saved.UserID, &saved.Date, &saved.Type, &saved.Notes, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return saved, nil
}

func (r *attendanceRepository) ListByUserRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, type, notes, created_at, updated_at
		FROM attendance_records
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.Type, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM attendance_records WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}

	return nil
}

func (r *attendanceRepository) GetAttendanceCounts(ctx context.Context, userID string, from, to time.Time) (int, int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE type = 'full') as full_days,
			COUNT(*) FILTER (WHERE type = 'half') as half_days
		FROM attendance_records
		WHERE user_id = $1 AND date >= $2 AND date < $3
	`

	var fullDays, halfDays int
	if err := q.QueryRow(ctx, query, userID, from, to).Scan(&fullDays, &halfDays); err != nil {
		return 0, 0, fmt.Errorf("failed to get attendance counts: %w", err)
	}

	return fullDays, halfDays, nil
}
