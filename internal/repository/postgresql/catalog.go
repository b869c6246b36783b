package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/haisanviet/backoffice-go/internal/domain/catalog"
	"github.com/haisanviet/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type catalogRepository struct {
	db *database.DB
}

func NewCatalogRepository(db *database.DB) catalog.Repository {
	return &catalogRepository{db: db}
}

// ========== CATEGORIES ==========

func (r *catalogRepository) CreateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO categories (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, is_active, created_at, updated_at
	`

	var created catalog.Category
	err := q.QueryRow(ctx, query, c.Name, c.Description, c.IsActive).Scan(
		&created.ID, &created.Name, &created.Description, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_categories_name") {
			return catalog.Category{}, catalog.ErrCategoryExists
		}
		return catalog.Category{}, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context, activeOnly bool) ([]catalog.Category, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
	`
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, nil
}

func (r *catalogRepository) GetCategoryByID(ctx context.Context, id string) (catalog.Category, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var c catalog.Category
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return catalog.Category{}, catalog.ErrCategoryNotFound
		}
		return catalog.Category{}, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}

// ========== PRODUCTS ==========

const productSelectColumns = `
	p.id, p.category_id, p.sku, p.name, p.unit, p.unit_price, p.stock_qty,
	p.description, p.is_active, p.created_at, p.updated_at,
	c.name as category_name
`

func scanProduct(row pgx.Row) (catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.SKU, &p.Name, &p.Unit, &p.UnitPrice, &p.StockQty,
		&p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName,
	)
	return p, err
}

func (r *catalogRepository) CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO products (category_id, sku, name, unit, unit_price, stock_qty, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		p.CategoryID, p.SKU, p.Name, p.Unit, p.UnitPrice, p.StockQty, p.Description, p.IsActive,
	).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "uk_products_sku") {
			return catalog.Product{}, catalog.ErrSKUExists
		}
		if strings.Contains(err.Error(), "fk_products_category") {
			return catalog.Product{}, catalog.ErrCategoryNotFound
		}
		return catalog.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	return r.GetProductByID(ctx, id)
}

func (r *catalogRepository) GetProductByID(ctx context.Context, id string) (catalog.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + productSelectColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1
	`

	p, err := scanProduct(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return catalog.Product{}, catalog.ErrProductNotFound
		}
		return catalog.Product{}, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + productSelectColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND p.category_id = $%d", argIdx)
		args = append(args, *filter.CategoryID)
		argIdx++
	}
	if filter.ActiveOnly {
		query += " AND p.is_active = true"
	}
	if filter.Search != nil {
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.sku ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	query += " ORDER BY p.name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, nil
}

func (r *catalogRepository) UpdateProduct(ctx context.Context, id string, patch catalog.ProductPatch) (catalog.Product, error) {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	argIdx := 2

	if patch.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *patch.Name)
		argIdx++
	}
	if patch.Unit != nil {
		setParts = append(setParts, fmt.Sprintf("unit = $%d", argIdx))
		args = append(args, *patch.Unit)
		argIdx++
	}
	if patch.UnitPrice != nil {
		setParts = append(setParts, fmt.Sprintf("unit_price = $%d", argIdx))
		args = append(args, *patch.UnitPrice)
		argIdx++
	}
	if patch.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *patch.Description)
		argIdx++
	}
	if patch.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *patch.IsActive)
		argIdx++
	}
	if patch.CategoryID != nil {
		setParts = append(setParts, fmt.Sprintf("category_id = $%d", argIdx))
		args = append(args, *patch.CategoryID)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE products
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return catalog.Product{}, catalog.ErrProductNotFound
		}
		if strings.Contains(err.Error(), "fk_products_category") {
			return catalog.Product{}, catalog.ErrCategoryNotFound
		}
		return catalog.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	return r.GetProductByID(ctx, id)
}

func (r *catalogRepository) AdjustStock(ctx context.Context, productID string, delta decimal.Decimal) (catalog.Product, error) {
	q := GetQuerier(ctx, r.db)

	// The WHERE guard keeps stock from going negative under concurrent sales
	query := `
		UPDATE products
		SET stock_qty = stock_qty + $2, updated_at = NOW()
		WHERE id = $1 AND stock_qty + $2 >= 0
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, productID, delta).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Distinguish missing product from insufficient stock
			var exists bool
			if checkErr := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); checkErr == nil && !exists {
				return catalog.Product{}, catalog.ErrProductNotFound
			}
			return catalog.Product{}, catalog.ErrInsufficientStock
		}
		return catalog.Product{}, fmt.Errorf("failed to adjust stock: %w", err)
	}

	return r.GetProductByID(ctx, productID)
}

// ========== IMPORT SOURCES ==========

func (r *catalogRepository) CreateImportSource(ctx context.Context, s catalog.ImportSource) (catalog.ImportSource, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO import_sources (name, source_type, contact_info, notes, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, source_type, contact_info, notes, is_active, created_at, updated_at
	`

	var created catalog.ImportSource
	err := q.QueryRow(ctx, query, s.Name, s.SourceType, s.ContactInfo, s.Notes, s.IsActive).Scan(
		&created.ID, &created.Name, &created.SourceType, &created.ContactInfo, &created.Notes,
		&created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return catalog.ImportSource{}, fmt.Errorf("failed to create import source: %w", err)
	}

	return created, nil
}

func (r *catalogRepository) ListImportSources(ctx context.Context, activeOnly bool) ([]catalog.ImportSource, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, source_type, contact_info, notes, is_active, created_at, updated_at
		FROM import_sources
	`
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list import sources: %w", err)
	}
	defer rows.Close()

	var sources []catalog.ImportSource
	for rows.Next() {
		var s catalog.ImportSource
		if err := rows.Scan(
			&s.ID, &s.Name, &s.SourceType, &s.ContactInfo, &s.Notes,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan import source: %w", err)
		}
		sources = append(sources, s)
	}

	return sources, nil
}

func (r *catalogRepository) GetImportSourceByID(ctx context.Context, id string) (catalog.ImportSource, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, source_type, contact_info, notes, is_active, created_at, updated_at
		FROM import_sources
		WHERE id = $1
	`

	var s catalog.ImportSource
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.SourceType, &s.ContactInfo, &s.Notes,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return catalog.ImportSource{}, catalog.ErrImportSourceNotFound
		}
		return catalog.ImportSource{}, fmt.Errorf("failed to get import source: %w", err)
	}

	return s, nil
}

// ========== IMPORT BATCHES ==========

const importBatchSelectColumns = `
	b.id, b.batch_code, b.product_id, b.source_id, b.import_date,
	b.quantity, b.import_price, b.sell_price, b.notes, b.created_by, b.created_at,
	p.name as product_name, s.name as source_name
`

func scanImportBatch(row pgx.Row) (catalog.ImportBatch, error) {
	var b catalog.ImportBatch
	err := row.Scan(
		&b.ID, &b.BatchCode, &b.ProductID, &b.SourceID, &b.ImportDate,
		&b.Quantity, &b.ImportPrice, &b.SellPrice, &b.Notes, &b.CreatedBy, &b.CreatedAt,
		&b.ProductName, &b.SourceName,
	)
	return b, err
}

func (r *catalogRepository) CreateImportBatch(ctx context.Context, b catalog.ImportBatch) (catalog.ImportBatch, error) {
	var id string

	// The batch row, the stock increase and the new sell price commit
	// together; a failure rolls back all three.
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		insertQuery := `
			INSERT INTO import_batches (batch_code, product_id, source_id, import_date, quantity, import_price, sell_price, notes, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`

		err := q.QueryRow(ctx, insertQuery,
			b.BatchCode, b.ProductID, b.SourceID, b.ImportDate,
			b.Quantity, b.ImportPrice, b.SellPrice, b.Notes, b.CreatedBy,
		).Scan(&id)
		if err != nil {
			if strings.Contains(err.Error(), "uk_import_batches_code") {
				return catalog.ErrBatchCodeExists
			}
			if strings.Contains(err.Error(), "fk_import_batches_product") {
				return catalog.ErrProductNotFound
			}
			if strings.Contains(err.Error(), "fk_import_batches_source") {
				return catalog.ErrImportSourceNotFound
			}
			return fmt.Errorf("failed to create import batch: %w", err)
		}

		stockQuery := `
			UPDATE products
			SET stock_qty = stock_qty + $2, unit_price = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING id
		`

		var productID string
		if err := q.QueryRow(ctx, stockQuery, b.ProductID, b.Quantity, b.SellPrice).Scan(&productID); err != nil {
			if err == pgx.ErrNoRows {
				return catalog.ErrProductNotFound
			}
			return fmt.Errorf("failed to apply import batch stock: %w", err)
		}

		return nil
	})
	if err != nil {
		return catalog.ImportBatch{}, err
	}

	return r.GetImportBatchByID(ctx, id)
}

func (r *catalogRepository) GetImportBatchByID(ctx context.Context, id string) (catalog.ImportBatch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + importBatchSelectColumns + `
		FROM import_batches b
		LEFT JOIN products p ON b.product_id = p.id
		LEFT JOIN import_sources s ON b.source_id = s.id
		WHERE b.id = $1
	`

	b, err := scanImportBatch(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return catalog.ImportBatch{}, catalog.ErrImportBatchNotFound
		}
		return catalog.ImportBatch{}, fmt.Errorf("failed to get import batch: %w", err)
	}

	return b, nil
}

func (r *catalogRepository) ListImportBatches(ctx context.Context, filter catalog.ImportBatchFilter) ([]catalog.ImportBatch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + importBatchSelectColumns + `
		FROM import_batches b
		LEFT JOIN products p ON b.product_id = p.id
		LEFT JOIN import_sources s ON b.source_id = s.id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND b.product_id = $%d", argIdx)
		args = append(args, *filter.ProductID)
		argIdx++
	}
	query += " ORDER BY b.import_date DESC, b.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list import batches: %w", err)
	}
	defer rows.Close()

	var batches []catalog.ImportBatch
	for rows.Next() {
		b, err := scanImportBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import batch: %w", err)
		}
		batches = append(batches, b)
	}

	return batches, nil
}
