package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, filter Filter) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Order, error)
	RecordPayment(ctx context.Context, id string, amount decimal.Decimal, method string) (Order, error)

	// Payroll collaborator contracts. Both aggregate over the half-open
	// creation-time range [from, to) for orders created by userID.
	GetCompletedRevenue(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error)
	GetOrderStats(ctx context.Context, userID string, from, to time.Time) (Stats, error)
}
