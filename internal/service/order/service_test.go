package order

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/haisanviet/backoffice-go/internal/domain/catalog"
	"github.com/haisanviet/backoffice-go/internal/domain/order"
	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== IN-MEMORY FAKES ==========

// fakeCatalogRepo embeds the interface so only the methods order
// creation touches need real implementations.
type fakeCatalogRepo struct {
	catalog.Repository
	products map[string]catalog.Product
}

func (f *fakeCatalogRepo) CreateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	return c, nil
}

func (f *fakeCatalogRepo) ListCategories(ctx context.Context, activeOnly bool) ([]catalog.Category, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) GetCategoryByID(ctx context.Context, id string) (catalog.Category, error) {
	return catalog.Category{}, catalog.ErrCategoryNotFound
}

func (f *fakeCatalogRepo) CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeCatalogRepo) GetProductByID(ctx context.Context, id string) (catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalogRepo) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) UpdateProduct(ctx context.Context, id string, patch catalog.ProductPatch) (catalog.Product, error) {
	return f.GetProductByID(ctx, id)
}

func (f *fakeCatalogRepo) AdjustStock(ctx context.Context, productID string, delta decimal.Decimal) (catalog.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	next := p.StockQty.Add(delta)
	if next.IsNegative() {
		return catalog.Product{}, catalog.ErrInsufficientStock
	}
	p.StockQty = next
	f.products[productID] = p
	return p, nil
}

type fakeOrderRepo struct {
	orders map[string]order.Order
	nextID int
}

func (f *fakeOrderRepo) Create(ctx context.Context, o order.Order) (order.Order, error) {
	f.nextID++
	o.ID = fmt.Sprintf("ord-%d", f.nextID)
	f.orders[o.ID] = o
	return o, nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return order.Order{}, order.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter order.Filter) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status order.Status) (order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return order.Order{}, order.ErrOrderNotFound
	}
	o.Status = status
	f.orders[id] = o
	return o, nil
}

func (f *fakeOrderRepo) RecordPayment(ctx context.Context, id string, amount decimal.Decimal, method string) (order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return order.Order{}, order.ErrOrderNotFound
	}
	o.PaidAmount = o.PaidAmount.Add(amount)
	switch {
	case o.PaidAmount.GreaterThanOrEqual(o.TotalAmount):
		o.PaymentStatus = order.PaymentPaid
	case o.PaidAmount.IsPositive():
		o.PaymentStatus = order.PaymentPartial
	}
	f.orders[id] = o
	return o, nil
}

func (f *fakeOrderRepo) GetCompletedRevenue(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeOrderRepo) GetOrderStats(ctx context.Context, userID string, from, to time.Time) (order.Stats, error) {
	return order.Stats{}, nil
}

// ========== TEST SETUP ==========

func newTestService() (order.Service, *fakeOrderRepo, *fakeCatalogRepo) {
	orderRepo := &fakeOrderRepo{orders: make(map[string]order.Order)}
	catalogRepo := &fakeCatalogRepo{products: make(map[string]catalog.Product)}

	catalogRepo.products["p1"] = catalog.Product{
		ID:        "p1",
		SKU:       "FISH-001",
		Name:      "Sea Bass",
		Unit:      "kg",
		UnitPrice: decimal.NewFromInt(180000),
		StockQty:  decimal.NewFromInt(10),
		IsActive:  true,
	}
	catalogRepo.products["p2"] = catalog.Product{
		ID:        "p2",
		SKU:       "SHRIMP-XL",
		Name:      "Black Tiger Shrimp XL",
		Unit:      "kg",
		UnitPrice: decimal.NewFromInt(350000),
		StockQty:  decimal.NewFromInt(5),
		IsActive:  true,
	}

	return NewService(orderRepo, catalogRepo), orderRepo, catalogRepo
}

func twoItemRequest() order.CreateRequest {
	return order.CreateRequest{
		CustomerName:  "Chi Lan",
		CustomerPhone: "0901234567",
		Items: []order.ItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(180000)},
			{ProductID: "p2", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(350000)},
		},
	}
}

// ========== CREATE ==========

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("totals and stock", func(t *testing.T) {
		svc, _, catalogRepo := newTestService()

		resp, err := svc.Create(ctx, "seller-1", twoItemRequest())
		require.NoError(t, err)

		// 2 x 180000 + 1 x 350000
		assert.True(t, decimal.NewFromInt(710000).Equal(resp.Subtotal), "subtotal %s", resp.Subtotal)
		assert.True(t, decimal.NewFromInt(710000).Equal(resp.TotalAmount))
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "unpaid", resp.PaymentStatus)
		assert.Equal(t, "seller-1", resp.CreatedBy)
		assert.Regexp(t, `^POS-\d{8}-[0-9A-F]{6}$`, resp.OrderCode)

		assert.True(t, decimal.NewFromInt(8).Equal(catalogRepo.products["p1"].StockQty))
		assert.True(t, decimal.NewFromInt(4).Equal(catalogRepo.products["p2"].StockQty))
	})

	t.Run("discount reduces the total", func(t *testing.T) {
		svc, _, _ := newTestService()

		req := twoItemRequest()
		req.DiscountAmount = decimal.NewFromInt(60000)

		resp, err := svc.Create(ctx, "seller-1", req)
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(710000).Equal(resp.Subtotal))
		assert.True(t, decimal.NewFromInt(650000).Equal(resp.TotalAmount))
	})

	t.Run("insufficient stock rolls back earlier items", func(t *testing.T) {
		svc, _, catalogRepo := newTestService()

		req := twoItemRequest()
		req.Items[1].Quantity = decimal.NewFromInt(6) // only 5 in stock

		_, err := svc.Create(ctx, "seller-1", req)
		assert.ErrorIs(t, err, catalog.ErrInsufficientStock)

		// p1's consumed stock is restored
		assert.True(t, decimal.NewFromInt(10).Equal(catalogRepo.products["p1"].StockQty))
		assert.True(t, decimal.NewFromInt(5).Equal(catalogRepo.products["p2"].StockQty))
	})

	t.Run("requires an acting user", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, "", twoItemRequest())
		assert.ErrorIs(t, err, user.ErrActorRequired)
	})
}

// ========== STATUS ==========

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to confirmed to completed", func(t *testing.T) {
		svc, _, _ := newTestService()

		resp, err := svc.Create(ctx, "seller-1", twoItemRequest())
		require.NoError(t, err)

		for _, status := range []string{"confirmed", "completed"} {
			resp2, err := svc.UpdateStatus(ctx, resp.ID, order.UpdateStatusRequest{Status: status})
			require.NoError(t, err)
			assert.Equal(t, status, resp2.Status)
		}

		// completed is terminal
		_, err = svc.UpdateStatus(ctx, resp.ID, order.UpdateStatusRequest{Status: "cancelled"})
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("cancelling restores stock", func(t *testing.T) {
		svc, _, catalogRepo := newTestService()

		resp, err := svc.Create(ctx, "seller-1", twoItemRequest())
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(8).Equal(catalogRepo.products["p1"].StockQty))

		_, err = svc.UpdateStatus(ctx, resp.ID, order.UpdateStatusRequest{Status: "cancelled"})
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(10).Equal(catalogRepo.products["p1"].StockQty))
		assert.True(t, decimal.NewFromInt(5).Equal(catalogRepo.products["p2"].StockQty))
	})
}

// ========== PAYMENTS ==========

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("partial then paid", func(t *testing.T) {
		svc, _, _ := newTestService()

		resp, err := svc.Create(ctx, "seller-1", twoItemRequest())
		require.NoError(t, err)

		resp2, err := svc.RecordPayment(ctx, resp.ID, order.PaymentRequest{
			Amount: decimal.NewFromInt(300000),
			Method: "cash",
		})
		require.NoError(t, err)
		assert.Equal(t, "partial", resp2.PaymentStatus)

		resp3, err := svc.RecordPayment(ctx, resp.ID, order.PaymentRequest{
			Amount: decimal.NewFromInt(410000),
			Method: "transfer",
		})
		require.NoError(t, err)
		assert.Equal(t, "paid", resp3.PaymentStatus)
	})

	t.Run("rejected on cancelled orders", func(t *testing.T) {
		svc, _, _ := newTestService()

		resp, err := svc.Create(ctx, "seller-1", twoItemRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, resp.ID, order.UpdateStatusRequest{Status: "cancelled"})
		require.NoError(t, err)

		_, err = svc.RecordPayment(ctx, resp.ID, order.PaymentRequest{
			Amount: decimal.NewFromInt(100000),
			Method: "cash",
		})
		assert.ErrorIs(t, err, order.ErrOrderNotEditable)
	})
}
