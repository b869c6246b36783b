package order

import "context"

type Service interface {
	Create(ctx context.Context, actorID string, req CreateRequest) (Response, error)
	Get(ctx context.Context, id string) (Response, error)
	List(ctx context.Context, filter Filter) ([]Response, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (Response, error)
	RecordPayment(ctx context.Context, id string, req PaymentRequest) (Response, error)
}
