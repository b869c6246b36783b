package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/haisanviet/backoffice-go/internal/domain/catalog"
	"github.com/haisanviet/backoffice-go/internal/handler/http/middleware"
	"github.com/haisanviet/backoffice-go/internal/handler/http/response"
)

type CatalogHandler interface {
	// Categories
	CreateCategory(w http.ResponseWriter, r *http.Request)
	ListCategories(w http.ResponseWriter, r *http.Request)

	// Products
	CreateProduct(w http.ResponseWriter, r *http.Request)
	GetProduct(w http.ResponseWriter, r *http.Request)
	ListProducts(w http.ResponseWriter, r *http.Request)
	UpdateProduct(w http.ResponseWriter, r *http.Request)
	AdjustStock(w http.ResponseWriter, r *http.Request)

	// Import sources and batches
	CreateImportSource(w http.ResponseWriter, r *http.Request)
	ListImportSources(w http.ResponseWriter, r *http.Request)
	CreateImportBatch(w http.ResponseWriter, r *http.Request)
	GetImportBatch(w http.ResponseWriter, r *http.Request)
	ListImportBatches(w http.ResponseWriter, r *http.Request)
}

type catalogHandlerImpl struct {
	catalogService catalog.Service
}

func NewCatalogHandler(catalogService catalog.Service) CatalogHandler {
	return &catalogHandlerImpl{catalogService: catalogService}
}

// ========== CATEGORIES ==========

func (h *catalogHandlerImpl) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.catalogService.CreateCategory(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Category created successfully", result)
}

func (h *catalogHandlerImpl) ListCategories(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.catalogService.ListCategories(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== PRODUCTS ==========

func (h *catalogHandlerImpl) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.catalogService.CreateProduct(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Product created successfully", result)
}

func (h *catalogHandlerImpl) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *catalogHandlerImpl) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := catalog.ProductFilter{
		ActiveOnly: query.Get("active_only") == "true",
	}
	if categoryID := query.Get("category_id"); categoryID != "" {
		filter.CategoryID = &categoryID
	}
	if search := query.Get("search"); search != "" {
		filter.Search = &search
	}

	result, err := h.catalogService.ListProducts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *catalogHandlerImpl) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch catalog.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.catalogService.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *catalogHandlerImpl) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req catalog.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.catalogService.AdjustStock(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== IMPORT SOURCES ==========

func (h *catalogHandlerImpl) CreateImportSource(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateImportSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.catalogService.CreateImportSource(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Import source created successfully", result)
}

func (h *catalogHandlerImpl) ListImportSources(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.catalogService.ListImportSources(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== IMPORT BATCHES ==========

func (h *catalogHandlerImpl) CreateImportBatch(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateImportBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.catalogService.CreateImportBatch(r.Context(), middleware.UserID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Import batch created successfully", result)
}

func (h *catalogHandlerImpl) GetImportBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.catalogService.GetImportBatch(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *catalogHandlerImpl) ListImportBatches(w http.ResponseWriter, r *http.Request) {
	var filter catalog.ImportBatchFilter
	if productID := r.URL.Query().Get("product_id"); productID != "" {
		filter.ProductID = &productID
	}

	result, err := h.catalogService.ListImportBatches(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
