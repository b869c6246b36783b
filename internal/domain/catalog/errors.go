package catalog

import "errors"

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryExists       = errors.New("category name already exists")
	ErrProductNotFound      = errors.New("product not found")
	ErrSKUExists            = errors.New("product SKU already exists")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrImportSourceNotFound = errors.New("import source not found")
	ErrImportBatchNotFound  = errors.New("import batch not found")
	ErrBatchCodeExists      = errors.New("import batch code already exists")
)
