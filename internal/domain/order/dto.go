package order

import (
	"time"

	"github.com/haisanviet/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreateRequest struct {
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress *string         `json:"customer_address,omitempty"`
	CustomerSource  *string         `json:"customer_source,omitempty"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	PaymentMethod   *string         `json:"payment_method,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	Items           []ItemRequest   `json:"items"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CustomerPhone) {
		errs = append(errs, validator.ValidationError{Field: "customer_phone", Message: "is required"})
	}
	if len(r.Items) == 0 {
		errs = append(errs, validator.ValidationError{Field: "items", Message: "at least one item is required"})
	}
	for _, item := range r.Items {
		if item.ProductID == "" {
			errs = append(errs, validator.ValidationError{Field: "items.product_id", Message: "is required"})
			break
		}
		if !item.Quantity.IsPositive() {
			errs = append(errs, validator.ValidationError{Field: "items.quantity", Message: "must be positive"})
			break
		}
	}
	if r.DiscountAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "discount_amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of pending, confirmed, completed, cancelled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
}

func (r *PaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if validator.IsEmpty(r.Method) {
		errs = append(errs, validator.ValidationError{Field: "method", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	Status    *string    `json:"status,omitempty"`
	CreatedBy *string    `json:"created_by,omitempty"`
	DateFrom  *time.Time `json:"date_from,omitempty"`
	DateTo    *time.Time `json:"date_to,omitempty"`
}

type ItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	ProductSKU  string          `json:"product_sku,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type Response struct {
	ID              string          `json:"id"`
	OrderCode       string          `json:"order_code"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress *string         `json:"customer_address,omitempty"`
	CustomerSource  *string         `json:"customer_source,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PaymentMethod   *string         `json:"payment_method,omitempty"`
	PaymentStatus   string          `json:"payment_status"`
	Status          string          `json:"status"`
	CreatedBy       string          `json:"created_by"`
	CreatedByName   string          `json:"created_by_name,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []ItemResponse  `json:"items,omitempty"`
}

func ToResponse(o Order) Response {
	createdByName := ""
	if o.CreatedByName != nil {
		createdByName = *o.CreatedByName
	}

	items := make([]ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		productName := ""
		productSKU := ""
		if item.ProductName != nil {
			productName = *item.ProductName
		}
		if item.ProductSKU != nil {
			productSKU = *item.ProductSKU
		}
		items = append(items, ItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: productName,
			ProductSKU:  productSKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}

	return Response{
		ID:              o.ID,
		OrderCode:       o.OrderCode,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		CustomerSource:  o.CustomerSource,
		Subtotal:        o.Subtotal,
		DiscountAmount:  o.DiscountAmount,
		TotalAmount:     o.TotalAmount,
		PaidAmount:      o.PaidAmount,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   string(o.PaymentStatus),
		Status:          string(o.Status),
		CreatedBy:       o.CreatedBy,
		CreatedByName:   createdByName,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		Items:           items,
	}
}
