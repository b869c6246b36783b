package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haisanviet/backoffice-go/internal/domain/catalog"
	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"github.com/haisanviet/backoffice-go/internal/pkg/validator"
)

type ServiceImpl struct {
	catalogRepo catalog.Repository
}

func NewService(catalogRepo catalog.Repository) catalog.Service {
	return &ServiceImpl{catalogRepo: catalogRepo}
}

// ========== CATEGORIES ==========

func (s *ServiceImpl) CreateCategory(ctx context.Context, req catalog.CreateCategoryRequest) (catalog.CategoryResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.CategoryResponse{}, err
	}

	created, err := s.catalogRepo.CreateCategory(ctx, catalog.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	})
	if err != nil {
		return catalog.CategoryResponse{}, err
	}

	return catalog.ToCategoryResponse(created), nil
}

func (s *ServiceImpl) ListCategories(ctx context.Context, activeOnly bool) ([]catalog.CategoryResponse, error) {
	categories, err := s.catalogRepo.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]catalog.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, catalog.ToCategoryResponse(c))
	}
	return responses, nil
}

// ========== PRODUCTS ==========

func (s *ServiceImpl) CreateProduct(ctx context.Context, req catalog.CreateProductRequest) (catalog.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.ProductResponse{}, err
	}

	if _, err := s.catalogRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return catalog.ProductResponse{}, err
	}

	created, err := s.catalogRepo.CreateProduct(ctx, catalog.Product{
		CategoryID:  req.CategoryID,
		SKU:         req.SKU,
		Name:        req.Name,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		StockQty:    req.StockQty,
		Description: req.Description,
		IsActive:    true,
	})
	if err != nil {
		return catalog.ProductResponse{}, err
	}

	return catalog.ToProductResponse(created), nil
}

func (s *ServiceImpl) GetProduct(ctx context.Context, id string) (catalog.ProductResponse, error) {
	p, err := s.catalogRepo.GetProductByID(ctx, id)
	if err != nil {
		return catalog.ProductResponse{}, err
	}
	return catalog.ToProductResponse(p), nil
}

func (s *ServiceImpl) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]catalog.ProductResponse, error) {
	products, err := s.catalogRepo.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]catalog.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, catalog.ToProductResponse(p))
	}
	return responses, nil
}

func (s *ServiceImpl) UpdateProduct(ctx context.Context, id string, patch catalog.ProductPatch) (catalog.ProductResponse, error) {
	updated, err := s.catalogRepo.UpdateProduct(ctx, id, patch)
	if err != nil {
		return catalog.ProductResponse{}, err
	}
	return catalog.ToProductResponse(updated), nil
}

func (s *ServiceImpl) AdjustStock(ctx context.Context, id string, req catalog.AdjustStockRequest) (catalog.ProductResponse, error) {
	if req.Delta.IsZero() {
		return s.GetProduct(ctx, id)
	}

	updated, err := s.catalogRepo.AdjustStock(ctx, id, req.Delta)
	if err != nil {
		return catalog.ProductResponse{}, err
	}
	return catalog.ToProductResponse(updated), nil
}

// ========== IMPORT SOURCES ==========

func (s *ServiceImpl) CreateImportSource(ctx context.Context, req catalog.CreateImportSourceRequest) (catalog.ImportSourceResponse, error) {
	if err := req.Validate(); err != nil {
		return catalog.ImportSourceResponse{}, err
	}

	created, err := s.catalogRepo.CreateImportSource(ctx, catalog.ImportSource{
		Name:        req.Name,
		SourceType:  req.SourceType,
		ContactInfo: req.ContactInfo,
		Notes:       req.Notes,
		IsActive:    true,
	})
	if err != nil {
		return catalog.ImportSourceResponse{}, err
	}

	return catalog.ToImportSourceResponse(created), nil
}

func (s *ServiceImpl) ListImportSources(ctx context.Context, activeOnly bool) ([]catalog.ImportSourceResponse, error) {
	sources, err := s.catalogRepo.ListImportSources(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]catalog.ImportSourceResponse, 0, len(sources))
	for _, src := range sources {
		responses = append(responses, catalog.ToImportSourceResponse(src))
	}
	return responses, nil
}

// ========== IMPORT BATCHES ==========

// newBatchCode builds an IMP-YYYYMMDD-XXXXXX code. The random suffix
// avoids a count query racing with concurrent imports.
func newBatchCode(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("IMP-%s-%s", now.Format("20060102"), suffix)
}

func (s *ServiceImpl) CreateImportBatch(ctx context.Context, actorID string, req catalog.CreateImportBatchRequest) (catalog.ImportBatchResponse, error) {
	if actorID == "" {
		return catalog.ImportBatchResponse{}, user.ErrActorRequired
	}
	if err := req.Validate(); err != nil {
		return catalog.ImportBatchResponse{}, err
	}

	if _, err := s.catalogRepo.GetProductByID(ctx, req.ProductID); err != nil {
		return catalog.ImportBatchResponse{}, err
	}
	if req.SourceID != nil {
		if _, err := s.catalogRepo.GetImportSourceByID(ctx, *req.SourceID); err != nil {
			return catalog.ImportBatchResponse{}, err
		}
	}

	importDate := time.Now()
	if req.ImportDate != "" {
		importDate, _ = validator.IsValidDate(req.ImportDate)
	}

	created, err := s.catalogRepo.CreateImportBatch(ctx, catalog.ImportBatch{
		BatchCode:   newBatchCode(time.Now()),
		ProductID:   req.ProductID,
		SourceID:    req.SourceID,
		ImportDate:  importDate,
		Quantity:    req.Quantity,
		ImportPrice: req.ImportPrice,
		SellPrice:   req.SellPrice,
		Notes:       req.Notes,
		CreatedBy:   actorID,
	})
	if err != nil {
		return catalog.ImportBatchResponse{}, err
	}

	return catalog.ToImportBatchResponse(created), nil
}

func (s *ServiceImpl) GetImportBatch(ctx context.Context, id string) (catalog.ImportBatchResponse, error) {
	b, err := s.catalogRepo.GetImportBatchByID(ctx, id)
	if err != nil {
		return catalog.ImportBatchResponse{}, err
	}
	return catalog.ToImportBatchResponse(b), nil
}

func (s *ServiceImpl) ListImportBatches(ctx context.Context, filter catalog.ImportBatchFilter) ([]catalog.ImportBatchResponse, error) {
	batches, err := s.catalogRepo.ListImportBatches(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]catalog.ImportBatchResponse, 0, len(batches))
	for _, b := range batches {
		responses = append(responses, catalog.ToImportBatchResponse(b))
	}
	return responses, nil
}
