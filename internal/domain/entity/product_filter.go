package entity

import "github.com/shopspring/decimal"

// ProductFilter is a domain-level filter for querying products.
// Zero values mean "no constraint". The repository layer maps it to a
// store predicate in one place so the count and page queries always agree.
type ProductFilter struct {
	Category   string
	Visibility Visibility
	Search     string // case-insensitive substring over name and description
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// ProductSortField is one of the columns a listing may be ordered by.
type ProductSortField string

const (
	ProductSortNone      ProductSortField = ""
	ProductSortName      ProductSortField = "name"
	ProductSortPrice     ProductSortField = "price"
	ProductSortQuantity  ProductSortField = "quantity"
	ProductSortCreatedAt ProductSortField = "createdAt"
)

func (f ProductSortField) IsValid() bool {
	switch f {
	case ProductSortNone, ProductSortName, ProductSortPrice, ProductSortQuantity, ProductSortCreatedAt:
		return true
	}
	return false
}

type ProductSort struct {
	Field ProductSortField
	Desc  bool
}
