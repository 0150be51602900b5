package repository

import (
	"context"

	"catalog-service/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductRepository is the store boundary of the catalog. Lookups that miss
// return (nil, nil); only store failures are errors.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindAll(ctx context.Context, filter *entity.ProductFilter, sort entity.ProductSort, limit, offset int) ([]entity.Product, error)
	Count(ctx context.Context, filter *entity.ProductFilter) (int64, error)
	Update(ctx context.Context, id uuid.UUID, patch *entity.ProductPatch) (*entity.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Summarize(ctx context.Context) ([]entity.ProductSummaryRow, error)
}
