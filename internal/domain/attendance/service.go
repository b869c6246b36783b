package attendance

import "context"

type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)
	ListByUserMonth(ctx context.Context, userID string, year, month int) ([]RecordResponse, error)
	Delete(ctx context.Context, id string) error
}
