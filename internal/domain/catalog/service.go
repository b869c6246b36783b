package catalog

import "context"

type Service interface {
	// Categories
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (CategoryResponse, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]CategoryResponse, error)

	// Products
	CreateProduct(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	GetProduct(ctx context.Context, id string) (ProductResponse, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (ProductResponse, error)
	AdjustStock(ctx context.Context, id string, req AdjustStockRequest) (ProductResponse, error)

	// Import sources
	CreateImportSource(ctx context.Context, req CreateImportSourceRequest) (ImportSourceResponse, error)
	ListImportSources(ctx context.Context, activeOnly bool) ([]ImportSourceResponse, error)

	// Import batches
	CreateImportBatch(ctx context.Context, actorID string, req CreateImportBatchRequest) (ImportBatchResponse, error)
	GetImportBatch(ctx context.Context, id string) (ImportBatchResponse, error)
	ListImportBatches(ctx context.Context, filter ImportBatchFilter) ([]ImportBatchResponse, error)
}
