package user

import "context"

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Response, error)
	Get(ctx context.Context, id string) (Response, error)
	List(ctx context.Context, activeOnly bool) ([]Response, error)
	Update(ctx context.Context, id string, patch Patch) (Response, error)
	Deactivate(ctx context.Context, id string) error
}
