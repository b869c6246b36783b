package user

import "context"

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, activeOnly bool) ([]User, error)
	// ListActiveByRoleSlugs returns active users whose primary role slug is in slugs.
	ListActiveByRoleSlugs(ctx context.Context, slugs []string) ([]User, error)
	Update(ctx context.Context, id string, patch Patch) (User, error)
	Deactivate(ctx context.Context, id string) error
}
