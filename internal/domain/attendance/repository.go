package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// Upsert inserts or replaces the record for (user_id, date).
	Upsert(ctx context.Context, rec Record) (Record, error)
	ListByUserRange(ctx context.Context, userID string, from, to time.Time) ([]Record, error)
	Delete(ctx context.Context, id string) error
	// GetAttendanceCounts aggregates full-day and half-day records for the
	// half-open range [from, to).
	GetAttendanceCounts(ctx context.Context, userID string, from, to time.Time) (fullDays, halfDays int, err error)
}
