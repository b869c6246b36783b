package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// Categories
	CreateCategory(ctx context.Context, c Category) (Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]Category, error)
	GetCategoryByID(ctx context.Context, id string) (Category, error)

	// Products
	CreateProduct(ctx context.Context, p Product) (Product, error)
	GetProductByID(ctx context.Context, id string) (Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (Product, error)
	// AdjustStock changes stock by delta (negative to consume) and returns
	// ErrInsufficientStock when the result would go below zero.
	AdjustStock(ctx context.Context, productID string, delta decimal.Decimal) (Product, error)

	// Import sources
	CreateImportSource(ctx context.Context, s ImportSource) (ImportSource, error)
	ListImportSources(ctx context.Context, activeOnly bool) ([]ImportSource, error)
	GetImportSourceByID(ctx context.Context, id string) (ImportSource, error)

	// Import batches
	// CreateImportBatch persists the batch, raises the product's stock by
	// the batch quantity and sets the product's unit price to the batch
	// sell price in a single transaction.
	CreateImportBatch(ctx context.Context, b ImportBatch) (ImportBatch, error)
	GetImportBatchByID(ctx context.Context, id string) (ImportBatch, error)
	ListImportBatches(ctx context.Context, filter ImportBatchFilter) ([]ImportBatch, error)
}
