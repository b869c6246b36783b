package catalog

import (
	"github.com/haisanviet/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateCategoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateProductRequest struct {
	CategoryID  string          `json:"category_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	StockQty    decimal.Decimal `json:"stock_qty"`
	Description *string         `json:"description,omitempty"`
}

func (r *CreateProductRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CategoryID == "" {
		errs = append(errs, validator.ValidationError{Field: "category_id", Message: "is required"})
	}
	if validator.IsEmpty(r.SKU) {
		errs = append(errs, validator.ValidationError{Field: "sku", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Unit) {
		errs = append(errs, validator.ValidationError{Field: "unit", Message: "is required"})
	}
	if r.UnitPrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "unit_price", Message: "must be non-negative"})
	}
	if r.StockQty.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "stock_qty", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ProductPatch lists the mutable product fields. Only non-nil fields are applied.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Description *string          `json:"description,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
}

type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

type ProductFilter struct {
	CategoryID *string `json:"category_id,omitempty"`
	ActiveOnly bool    `json:"active_only"`
	Search     *string `json:"search,omitempty"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

type ProductResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	StockQty     decimal.Decimal `json:"stock_qty"`
	Description  *string         `json:"description,omitempty"`
	IsActive     bool            `json:"is_active"`
}

func ToCategoryResponse(c Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}

func ToProductResponse(p Product) ProductResponse {
	categoryName := ""
	if p.CategoryName != nil {
		categoryName = *p.CategoryName
	}
	return ProductResponse{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		CategoryName: categoryName,
		SKU:          p.SKU,
		Name:         p.Name,
		Unit:         p.Unit,
		UnitPrice:    p.UnitPrice,
		StockQty:     p.StockQty,
		Description:  p.Description,
		IsActive:     p.IsActive,
	}
}

var importSourceTypes = []string{"facebook", "zalo", "messenger", "phone", "market", "company", "other"}

type CreateImportSourceRequest struct {
	Name        string  `json:"name"`
	SourceType  string  `json:"source_type"`
	ContactInfo *string `json:"contact_info,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *CreateImportSourceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsInSlice(r.SourceType, importSourceTypes) {
		errs = append(errs, validator.ValidationError{Field: "source_type", Message: "must be one of: facebook, zalo, messenger, phone, market, company, other"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateImportBatchRequest struct {
	ProductID   string          `json:"product_id"`
	SourceID    *string         `json:"source_id,omitempty"`
	ImportDate  string          `json:"import_date,omitempty"` // YYYY-MM-DD, defaults to today
	Quantity    decimal.Decimal `json:"quantity"`
	ImportPrice decimal.Decimal `json:"import_price"`
	SellPrice   decimal.Decimal `json:"sell_price"`
	Notes       *string         `json:"notes,omitempty"`
}

func (r *CreateImportBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ProductID == "" {
		errs = append(errs, validator.ValidationError{Field: "product_id", Message: "is required"})
	}
	if !r.Quantity.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "must be positive"})
	}
	if r.ImportPrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "import_price", Message: "must be non-negative"})
	}
	if r.SellPrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "sell_price", Message: "must be non-negative"})
	}
	if r.ImportDate != "" {
		if _, ok := validator.IsValidDate(r.ImportDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "import_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ImportBatchFilter struct {
	ProductID *string `json:"product_id,omitempty"`
}

type ImportSourceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	SourceType  string  `json:"source_type"`
	ContactInfo *string `json:"contact_info,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	IsActive    bool    `json:"is_active"`
}

type ImportBatchResponse struct {
	ID          string          `json:"id"`
	BatchCode   string          `json:"batch_code"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	SourceID    *string         `json:"source_id,omitempty"`
	SourceName  string          `json:"source_name,omitempty"`
	ImportDate  string          `json:"import_date"`
	Quantity    decimal.Decimal `json:"quantity"`
	ImportPrice decimal.Decimal `json:"import_price"`
	SellPrice   decimal.Decimal `json:"sell_price"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedBy   string          `json:"created_by"`
}

func ToImportSourceResponse(s ImportSource) ImportSourceResponse {
	return ImportSourceResponse{
		ID:          s.ID,
		Name:        s.Name,
		SourceType:  s.SourceType,
		ContactInfo: s.ContactInfo,
		Notes:       s.Notes,
		IsActive:    s.IsActive,
	}
}

func ToImportBatchResponse(b ImportBatch) ImportBatchResponse {
	productName := ""
	if b.ProductName != nil {
		productName = *b.ProductName
	}
	sourceName := ""
	if b.SourceName != nil {
		sourceName = *b.SourceName
	}
	return ImportBatchResponse{
		ID:          b.ID,
		BatchCode:   b.BatchCode,
		ProductID:   b.ProductID,
		ProductName: productName,
		SourceID:    b.SourceID,
		SourceName:  sourceName,
		ImportDate:  b.ImportDate.Format("2006-01-02"),
		Quantity:    b.Quantity,
		ImportPrice: b.ImportPrice,
		SellPrice:   b.SellPrice,
		Notes:       b.Notes,
		CreatedBy:   b.CreatedBy,
	}
}
