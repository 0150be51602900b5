package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Visibility gates whether non-admin roles may see a product.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

type Product struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SKU           string              `gorm:"column:sku;type:varchar(50);uniqueIndex:idx_products_sku;not null"`
	Name          string              `gorm:"type:varchar(200);not null"`
	Description   *string             `gorm:"type:varchar(1000)"`
	Category      string              `gorm:"type:varchar(100);not null;index"`
	Visibility    Visibility          `gorm:"type:varchar(10);not null;default:public;index"`
	Price         decimal.Decimal     `gorm:"type:numeric(12,2);not null;index"`
	DiscountPrice decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Quantity      int                 `gorm:"not null;default:0"`
	CreatedAt     time.Time           `gorm:"autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

// IsVisibleTo reports whether a caller with the given role may read the product.
func (p *Product) IsVisibleTo(role string) bool {
	return role == RoleAdmin || p.Visibility == VisibilityPublic
}

// ProductPatch carries the fields of a partial update. Nil pointers are left
// untouched; the *Set flags distinguish "clear to null" from "not provided"
// for the two nullable columns.
type ProductPatch struct {
	Name             *string
	Description      *string
	DescriptionSet   bool
	Category         *string
	Visibility       *Visibility
	Price            *decimal.Decimal
	DiscountPrice    *decimal.Decimal
	DiscountPriceSet bool
	Quantity         *int
}

// IsEmpty reports whether the patch changes nothing.
func (p *ProductPatch) IsEmpty() bool {
	return p.Name == nil && !p.DescriptionSet && p.Category == nil && p.Visibility == nil &&
		p.Price == nil && !p.DiscountPriceSet && p.Quantity == nil
}

// ApplyTo copies the present fields onto product.
func (p *ProductPatch) ApplyTo(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.DescriptionSet {
		product.Description = p.Description
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Visibility != nil {
		product.Visibility = *p.Visibility
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.DiscountPriceSet {
		if p.DiscountPrice != nil {
			product.DiscountPrice = decimal.NewNullDecimal(*p.DiscountPrice)
		} else {
			product.DiscountPrice = decimal.NullDecimal{}
		}
	}
	if p.Quantity != nil {
		product.Quantity = *p.Quantity
	}
}
