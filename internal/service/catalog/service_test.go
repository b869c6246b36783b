package catalog

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/haisanviet/backoffice-go/internal/domain/catalog"
	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"github.com/haisanviet/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== IN-MEMORY FAKE ==========

type fakeCatalogRepo struct {
	categories map[string]catalog.Category
	products   map[string]catalog.Product
	sources    map[string]catalog.ImportSource
	batches    map[string]catalog.ImportBatch
	nextID     int
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		categories: make(map[string]catalog.Category),
		products:   make(map[string]catalog.Product),
		sources:    make(map[string]catalog.ImportSource),
		batches:    make(map[string]catalog.ImportBatch),
	}
}

func (f *fakeCatalogRepo) CreateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	f.nextID++
	c.ID = fmt.Sprintf("cat-%d", f.nextID)
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeCatalogRepo) ListCategories(ctx context.Context, activeOnly bool) ([]catalog.Category, error) {
	var out []catalog.Category
	for _, c := range f.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetCategoryByID(ctx context.Context, id string) (catalog.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return catalog.Category{}, catalog.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCatalogRepo) CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	f.nextID++
	p.ID = fmt.Sprintf("prod-%d", f.nextID)
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
	var out []catalog.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalogRepo) UpdateProduct(ctx context.Context, id string, patch catalog.ProductPatch) (catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.UnitPrice != nil {
		p.UnitPrice = *patch.UnitPrice
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	f.products[id] = p
	return p, nil
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

func (f *fakeCatalogRepo) CreateImportSource(ctx context.Context, s catalog.ImportSource) (catalog.ImportSource, error) {
	f.nextID++
	s.ID = fmt.Sprintf("src-%d", f.nextID)
	f.sources[s.ID] = s
	return s, nil
}

func (f *fakeCatalogRepo) ListImportSources(ctx context.Context, activeOnly bool) ([]catalog.ImportSource, error) {
	var out []catalog.ImportSource
	for _, s := range f.sources {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetImportSourceByID(ctx context.Context, id string) (catalog.ImportSource, error) {
	s, ok := f.sources[id]
	if !ok {
		return catalog.ImportSource{}, catalog.ErrImportSourceNotFound
	}
	return s, nil
}

func (f *fakeCatalogRepo) CreateImportBatch(ctx context.Context, b catalog.ImportBatch) (catalog.ImportBatch, error) {
	p, ok := f.products[b.ProductID]
	if !ok {
		return catalog.ImportBatch{}, catalog.ErrProductNotFound
	}
	f.nextID++
	b.ID = fmt.Sprintf("imp-%d", f.nextID)
	f.batches[b.ID] = b

	p.StockQty = p.StockQty.Add(b.Quantity)
	p.UnitPrice = b.SellPrice
	f.products[b.ProductID] = p
	return b, nil
}

func (f *fakeCatalogRepo) GetImportBatchByID(ctx context.Context, id string) (catalog.ImportBatch, error) {
	b, ok := f.batches[id]
	if !ok {
		return catalog.ImportBatch{}, catalog.ErrImportBatchNotFound
	}
	return b, nil
}

func (f *fakeCatalogRepo) ListImportBatches(ctx context.Context, filter catalog.ImportBatchFilter) ([]catalog.ImportBatch, error) {
	var out []catalog.ImportBatch
	for _, b := range f.batches {
		if filter.ProductID != nil && b.ProductID != *filter.ProductID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// ========== HELPERS ==========

func newTestService() (catalog.Service, *fakeCatalogRepo) {
	repo := newFakeCatalogRepo()
	return NewService(repo), repo
}

func seedProduct(repo *fakeCatalogRepo, stock, price string) catalog.Product {
	p, _ := repo.CreateProduct(context.Background(), catalog.Product{
		CategoryID: "cat-1",
		SKU:        "TOM-SU-01",
		Name:       "Tom su",
		Unit:       "kg",
		UnitPrice:  decimal.RequireFromString(price),
		StockQty:   decimal.RequireFromString(stock),
		IsActive:   true,
	})
	return p
}

// ========== TESTS ==========

func TestCreateImportSource(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active source", func(t *testing.T) {
		svc, _ := newTestService()

		got, err := svc.CreateImportSource(ctx, catalog.CreateImportSourceRequest{
			Name:       "Cho dau moi Binh Dien",
			SourceType: "market",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "market", got.SourceType)
		assert.True(t, got.IsActive)
	})

	t.Run("rejects unknown source type", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.CreateImportSource(ctx, catalog.CreateImportSourceRequest{
			Name:       "Nguon la",
			SourceType: "telegram",
		})
		var validationErrs validator.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Contains(t, validationErrs.ToMap(), "source_type")
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.CreateImportSource(ctx, catalog.CreateImportSourceRequest{
			SourceType: "zalo",
		})
		var validationErrs validator.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Contains(t, validationErrs.ToMap(), "name")
	})
}

func TestCreateImportBatch(t *testing.T) {
	ctx := context.Background()
	batchCodePattern := regexp.MustCompile(`^IMP-\d{8}-[0-9A-F]{6}$`)

	t.Run("raises stock and updates sell price", func(t *testing.T) {
		svc, repo := newTestService()
		p := seedProduct(repo, "10", "250000")

		got, err := svc.CreateImportBatch(ctx, "manager-1", catalog.CreateImportBatchRequest{
			ProductID:   p.ID,
			Quantity:    decimal.RequireFromString("25.5"),
			ImportPrice: decimal.RequireFromString("180000"),
			SellPrice:   decimal.RequireFromString("260000"),
		})
		require.NoError(t, err)
		assert.Regexp(t, batchCodePattern, got.BatchCode)
		assert.Equal(t, "manager-1", got.CreatedBy)

		updated, err := repo.GetProductByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "35.5", updated.StockQty.String())
		assert.Equal(t, "260000", updated.UnitPrice.String())
	})

	t.Run("records the source when given", func(t *testing.T) {
		svc, repo := newTestService()
		p := seedProduct(repo, "0", "100000")
		src, err := repo.CreateImportSource(ctx, catalog.ImportSource{Name: "Vua tom", SourceType: "company", IsActive: true})
		require.NoError(t, err)

		got, err := svc.CreateImportBatch(ctx, "manager-1", catalog.CreateImportBatchRequest{
			ProductID:   p.ID,
			SourceID:    &src.ID,
			Quantity:    decimal.NewFromInt(5),
			ImportPrice: decimal.NewFromInt(90000),
			SellPrice:   decimal.NewFromInt(120000),
		})
		require.NoError(t, err)
		require.NotNil(t, got.SourceID)
		assert.Equal(t, src.ID, *got.SourceID)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.CreateImportBatch(ctx, "manager-1", catalog.CreateImportBatchRequest{
			ProductID:   "prod-missing",
			Quantity:    decimal.NewFromInt(5),
			ImportPrice: decimal.NewFromInt(90000),
			SellPrice:   decimal.NewFromInt(120000),
		})
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		svc, repo := newTestService()
		p := seedProduct(repo, "0", "100000")
		missing := "src-missing"

		_, err := svc.CreateImportBatch(ctx, "manager-1", catalog.CreateImportBatchRequest{
			ProductID:   p.ID,
			SourceID:    &missing,
			Quantity:    decimal.NewFromInt(5),
			ImportPrice: decimal.NewFromInt(90000),
			SellPrice:   decimal.NewFromInt(120000),
		})
		assert.ErrorIs(t, err, catalog.ErrImportSourceNotFound)
	})

	t.Run("requires an acting user", func(t *testing.T) {
		svc, repo := newTestService()
		p := seedProduct(repo, "0", "100000")

		_, err := svc.CreateImportBatch(ctx, "", catalog.CreateImportBatchRequest{
			ProductID:   p.ID,
			Quantity:    decimal.NewFromInt(5),
			ImportPrice: decimal.NewFromInt(90000),
			SellPrice:   decimal.NewFromInt(120000),
		})
		assert.ErrorIs(t, err, user.ErrActorRequired)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc, repo := newTestService()
		p := seedProduct(repo, "0", "100000")

		_, err := svc.CreateImportBatch(ctx, "manager-1", catalog.CreateImportBatchRequest{
			ProductID:   p.ID,
			Quantity:    decimal.Zero,
			ImportPrice: decimal.NewFromInt(90000),
			SellPrice:   decimal.NewFromInt(120000),
		})
		var validationErrs validator.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Contains(t, validationErrs.ToMap(), "quantity")
	})

	t.Run("honors an explicit import date", func(t *testing.T) {
		svc, repo := newTestService()
		p := seedProduct(repo, "0", "100000")

		got, err := svc.CreateImportBatch(ctx, "manager-1", catalog.CreateImportBatchRequest{
			ProductID:   p.ID,
			ImportDate:  "2026-08-15",
			Quantity:    decimal.NewFromInt(5),
			ImportPrice: decimal.NewFromInt(90000),
			SellPrice:   decimal.NewFromInt(120000),
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-08-15", got.ImportDate)
	})
}

func TestListImportBatches(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by product", func(t *testing.T) {
		svc, repo := newTestService()
		first := seedProduct(repo, "0", "100000")
		second := seedProduct(repo, "0", "200000")

		for _, productID := range []string{first.ID, first.ID, second.ID} {
			_, err := svc.CreateImportBatch(ctx, "manager-1", catalog.CreateImportBatchRequest{
				ProductID:   productID,
				Quantity:    decimal.NewFromInt(2),
				ImportPrice: decimal.NewFromInt(50000),
				SellPrice:   decimal.NewFromInt(70000),
			})
			require.NoError(t, err)
		}

		got, err := svc.ListImportBatches(ctx, catalog.ImportBatchFilter{ProductID: &first.ID})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
