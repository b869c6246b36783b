package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum - simplified counter-sale workflow.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// CanTransitionTo reports whether the status change is allowed.
// pending -> confirmed|cancelled, confirmed -> completed|cancelled.
// completed and cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus enum
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

type Item struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal

	// Joined fields
	ProductName *string
	ProductSKU  *string
}

// Order - A counter sale. CreatedBy attributes revenue to the selling
// employee for commission and KPI purposes.
type Order struct {
	ID              string
	OrderCode       string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress *string
	CustomerSource  *string

	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	PaymentMethod  *string
	PaymentStatus  PaymentStatus

	Status    Status
	CreatedBy string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []Item

	// Joined fields
	CreatedByName *string
}

// Stats - Aggregates over a seller's orders in a period, consumed by the
// payroll KPI scorer.
type Stats struct {
	TotalOrders     int
	CompletedOrders int
	TotalRevenue    decimal.Decimal
	TotalPaid       decimal.Decimal
}
