package repository

import "time"

// OrderListFilter filters order list queries.
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	GUID        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ProductListFilter filters product list queries.
type ProductListFilter struct {
	Page       int
	PageSize   int
	BrandID    uint
	Search     string
	OnlyActive bool
	WithBrand  bool
}
