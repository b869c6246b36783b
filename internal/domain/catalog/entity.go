package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Product - A sellable seafood item. Stock is kept in the product's unit
// (kg for weighed goods, piece for counted ones).
type Product struct {
	ID          string
	CategoryID  string
	SKU         string
	Name        string
	Unit        string // "kg", "piece", ...
	UnitPrice   decimal.Decimal
	StockQty    decimal.Decimal
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	CategoryName *string
}

// ImportSource - Where goods come from: a market stall, a supplier
// company, a deal struck over Facebook or Zalo.
type ImportSource struct {
	ID          string
	Name        string
	SourceType  string // "facebook", "zalo", "messenger", "phone", "market", "company", "other"
	ContactInfo *string
	Notes       *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ImportBatch - One delivery of a product into stock. Records the
// provenance and cost of the goods; creating a batch raises the
// product's stock by the batch quantity.
type ImportBatch struct {
	ID          string
	BatchCode   string
	ProductID   string
	SourceID    *string
	ImportDate  time.Time
	Quantity    decimal.Decimal
	ImportPrice decimal.Decimal
	SellPrice   decimal.Decimal
	Notes       *string
	CreatedBy   string
	CreatedAt   time.Time

	// Joined fields
	ProductName *string
	SourceName  *string
}
