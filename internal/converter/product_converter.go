package converter

import (
	"catalog-service/internal/delivery/dto"
	"catalog-service/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ProductToResponse converts a Product entity to ProductResponse DTO
func ProductToResponse(product *entity.Product) *dto.ProductResponse {
	if product == nil {
		return nil
	}

	var discountPrice *decimal.Decimal
	if product.DiscountPrice.Valid {
		d := product.DiscountPrice.Decimal
		discountPrice = &d
	}

	return &dto.ProductResponse{
		ID:            product.ID,
		SKU:           product.SKU,
		Name:          product.Name,
		Description:   product.Description,
		Category:      product.Category,
		Type:          string(product.Visibility),
		Price:         product.Price,
		DiscountPrice: discountPrice,
		Quantity:      product.Quantity,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

func ProductsToResponses(products []entity.Product) []dto.ProductResponse {
	responses := make([]dto.ProductResponse, len(products))
	for i := range products {
		responses[i] = *ProductToResponse(&products[i])
	}
	return responses
}

// UpdateRequestToPatch maps a validated partial update onto the domain patch.
func UpdateRequestToPatch(req *dto.UpdateProductRequest) *entity.ProductPatch {
	patch := &entity.ProductPatch{
		Name:             req.Name,
		Category:         req.Category,
		Price:            req.Price,
		Quantity:         req.Quantity,
		DescriptionSet:   req.Description.Set,
		Description:      req.Description.Value,
		DiscountPriceSet: req.DiscountPrice.Set,
		DiscountPrice:    req.DiscountPrice.Value,
	}
	if req.Type != nil {
		visibility := entity.Visibility(*req.Type)
		patch.Visibility = &visibility
	}
	return patch
}
