package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/haisanviet/backoffice-go/internal/domain/catalog"
	"github.com/haisanviet/backoffice-go/internal/domain/order"
	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

type ServiceImpl struct {
	orderRepo   order.Repository
	catalogRepo catalog.Repository
}

func NewService(orderRepo order.Repository, catalogRepo catalog.Repository) order.Service {
	return &ServiceImpl{orderRepo: orderRepo, catalogRepo: catalogRepo}
}

// newOrderCode builds a POS-YYYYMMDD-XXXXXX code. The random suffix
// avoids a count query racing with concurrent sales.
func newOrderCode(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("POS-%s-%s", now.Format("20060102"), suffix)
}

func (s *ServiceImpl) Create(ctx context.Context, actorID string, req order.CreateRequest) (order.Response, error) {
	if actorID == "" {
		return order.Response{}, user.ErrActorRequired
	}
	if err := req.Validate(); err != nil {
		return order.Response{}, err
	}

	// Consume stock up front; a failed item rolls back what was taken.
	var consumed []order.Item
	restore := func() {
		for _, item := range consumed {
			_, _ = s.catalogRepo.AdjustStock(ctx, item.ProductID, item.Quantity)
		}
	}

	subtotal := decimal.Zero
	items := make([]order.Item, 0, len(req.Items))
	for _, ir := range req.Items {
		if _, err := s.catalogRepo.AdjustStock(ctx, ir.ProductID, ir.Quantity.Neg()); err != nil {
			restore()
			return order.Response{}, err
		}

		lineTotal := ir.Quantity.Mul(ir.UnitPrice).Round(2)
		item := order.Item{
			ProductID: ir.ProductID,
			Quantity:  ir.Quantity,
			UnitPrice: ir.UnitPrice,
			LineTotal: lineTotal,
		}
		items = append(items, item)
		consumed = append(consumed, item)
		subtotal = subtotal.Add(lineTotal)
	}

	totalAmount := subtotal.Sub(req.DiscountAmount)

	created, err := s.orderRepo.Create(ctx, order.Order{
		OrderCode:       newOrderCode(time.Now()),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		CustomerSource:  req.CustomerSource,
		Subtotal:        subtotal,
		DiscountAmount:  req.DiscountAmount,
		TotalAmount:     totalAmount,
		PaidAmount:      decimal.Zero,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   order.PaymentUnpaid,
		Status:          order.StatusPending,
		CreatedBy:       actorID,
		Notes:           req.Notes,
		Items:           items,
	})
	if err != nil {
		restore()
		return order.Response{}, err
	}

	return order.ToResponse(created), nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (order.Response, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return order.Response{}, err
	}
	return order.ToResponse(o), nil
}

func (s *ServiceImpl) List(ctx context.Context, filter order.Filter) ([]order.Response, error) {
	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]order.Response, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, order.ToResponse(o))
	}
	return responses, nil
}

func (s *ServiceImpl) UpdateStatus(ctx context.Context, id string, req order.UpdateStatusRequest) (order.Response, error) {
	if err := req.Validate(); err != nil {
		return order.Response{}, err
	}

	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return order.Response{}, err
	}

	next := order.Status(req.Status)
	if !o.Status.CanTransitionTo(next) {
		return order.Response{}, fmt.Errorf("%w: %s -> %s", order.ErrInvalidTransition, o.Status, next)
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, next)
	if err != nil {
		return order.Response{}, err
	}

	// Cancelling puts the goods back on the shelf
	if next == order.StatusCancelled {
		for _, item := range o.Items {
			if _, err := s.catalogRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				return order.Response{}, fmt.Errorf("failed to restore stock: %w", err)
			}
		}
	}

	return order.ToResponse(updated), nil
}

func (s *ServiceImpl) RecordPayment(ctx context.Context, id string, req order.PaymentRequest) (order.Response, error) {
	if err := req.Validate(); err != nil {
		return order.Response{}, err
	}

	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return order.Response{}, err
	}
	if o.Status == order.StatusCancelled {
		return order.Response{}, order.ErrOrderNotEditable
	}

	updated, err := s.orderRepo.RecordPayment(ctx, id, req.Amount, req.Method)
	if err != nil {
		return order.Response{}, err
	}

	return order.ToResponse(updated), nil
}
