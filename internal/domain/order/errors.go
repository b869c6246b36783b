package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderCodeExists   = errors.New("order code already exists")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrOrderNotEditable  = errors.New("order is completed or cancelled")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrOverpayment       = errors.New("paid amount exceeds order total")
)
