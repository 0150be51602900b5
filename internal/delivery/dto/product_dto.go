package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateProductRequest struct {
	SKU           string           `json:"sku" validate:"required,min=3,max=50,sku"`
	Name          string           `json:"name" validate:"required,min=3,max=200"`
	Description   *string          `json:"description" validate:"omitempty,max=1000"`
	Category      string           `json:"category" validate:"required,min=2,max=100"`
	Type          string           `json:"type" validate:"omitempty,oneof=public private"`
	Price         *decimal.Decimal `json:"price" validate:"required,dgt0,dscale2"`
	DiscountPrice *decimal.Decimal `json:"discountPrice" validate:"omitnil,dgte0,dscale2"`
	Quantity      *int             `json:"quantity" validate:"omitnil,gte=0"`
}

// Sanitize trims strings and normalizes an empty description to null.
func (r *CreateProductRequest) Sanitize() {
	r.SKU = strings.TrimSpace(r.SKU)
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Type = strings.TrimSpace(r.Type)
	r.Description = trimToNil(r.Description)
}

// UpdateProductRequest is a partial update. SKU is declared only so that a
// payload carrying it fails validation.
type UpdateProductRequest struct {
	SKU           json.RawMessage           `json:"sku" validate:"isdefault"`
	Name          *string                   `json:"name" validate:"omitnil,min=3,max=200"`
	Description   Optional[string]          `json:"description" validate:"omitempty,max=1000"`
	Category      *string                   `json:"category" validate:"omitnil,min=2,max=100"`
	Type          *string                   `json:"type" validate:"omitnil,oneof=public private"`
	Price         *decimal.Decimal          `json:"price" validate:"omitnil,dgt0,dscale2"`
	DiscountPrice Optional[decimal.Decimal] `json:"discountPrice" validate:"omitempty,dgte0,dscale2"`
	Quantity      *int                      `json:"quantity" validate:"omitnil,gte=0"`
}

func (r *UpdateProductRequest) Sanitize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Category != nil {
		category := strings.TrimSpace(*r.Category)
		r.Category = &category
	}
	if r.Type != nil {
		visibility := strings.TrimSpace(*r.Type)
		r.Type = &visibility
	}
	if r.Description.Set {
		r.Description.Value = trimToNil(r.Description.Value)
	}
}

// IsEmpty reports whether no updatable field was sent.
func (r *UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && !r.Description.Set && r.Category == nil && r.Type == nil &&
		r.Price == nil && !r.DiscountPrice.Set && r.Quantity == nil
}

// ListProductsQuery is the parsed and defaulted query string of a listing.
type ListProductsQuery struct {
	Page     int              `json:"page" validate:"min=1"`
	Limit    int              `json:"limit" validate:"min=1,max=100"`
	Category string           `json:"category" validate:"omitempty,max=100"`
	Type     string           `json:"type" validate:"omitempty,oneof=public private"`
	Search   string           `json:"search" validate:"omitempty,max=200"`
	Sort     string           `json:"sort" validate:"omitempty,oneof=name price quantity createdAt"`
	Order    string           `json:"order" validate:"oneof=asc desc"`
	MinPrice *decimal.Decimal `json:"minPrice" validate:"omitnil,dgte0"`
	MaxPrice *decimal.Decimal `json:"maxPrice" validate:"omitnil,dgte0"`
}

// Response DTOs

type ProductResponse struct {
	ID            uuid.UUID        `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Description   *string          `json:"description"`
	Category      string           `json:"category"`
	Type          string           `json:"type"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice"`
	Quantity      int              `json:"quantity"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type ProductListResponse struct {
	Products   []ProductResponse
	Page       int
	Limit      int
	TotalItems int64
}

type DeletedProductResponse struct {
	ID uuid.UUID `json:"id"`
}
