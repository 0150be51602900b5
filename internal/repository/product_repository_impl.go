package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-service/internal/domain/entity"
	domainRepo "catalog-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindAll(ctx context.Context, filter *entity.ProductFilter, sort entity.ProductSort, limit, offset int) ([]entity.Product, error) {
	products := make([]entity.Product, 0, limit)

	err := applyProductFilter(r.db.WithContext(ctx).Model(&entity.Product{}), filter).
		Order(productOrderClause(sort)).
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) Count(ctx context.Context, filter *entity.ProductFilter) (int64, error) {
	var total int64
	err := applyProductFilter(r.db.WithContext(ctx).Model(&entity.Product{}), filter).Count(&total).Error
	return total, err
}

func (r *productRepository) Update(ctx context.Context, id uuid.UUID, patch *entity.ProductPatch) (*entity.Product, error) {
	columns := productPatchColumns(patch)
	if len(columns) == 0 {
		return r.FindByID(ctx, id)
	}

	var product entity.Product
	result := r.db.WithContext(ctx).
		Model(&product).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return &product, nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&product)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return &product, nil
}

// Summarize aggregates the whole table per (category, visibility) in a single
// query; the usecase folds the groups into a statistics snapshot.
func (r *productRepository) Summarize(ctx context.Context) ([]entity.ProductSummaryRow, error) {
	var rows []entity.ProductSummaryRow

	err := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Select(`category,
			visibility,
			COUNT(*) AS product_count,
			COALESCE(SUM(price * quantity), 0) AS inventory_value,
			COALESCE(SUM(discount_price * quantity), 0) AS discounted_value,
			COUNT(*) FILTER (WHERE quantity = 0) AS out_of_stock`).
		Group("category, visibility").
		Order("category, visibility").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// applyProductFilter is the single mapping from the domain filter to SQL.
// Count and page queries both go through it.
func applyProductFilter(query *gorm.DB, filter *entity.ProductFilter) *gorm.DB {
	if filter == nil {
		return query
	}

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Visibility != "" {
		query = query.Where("visibility = ?", string(filter.Visibility))
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	return query
}

var productSortColumns = map[entity.ProductSortField]string{
	entity.ProductSortName:      "name",
	entity.ProductSortPrice:     "price",
	entity.ProductSortQuantity:  "quantity",
	entity.ProductSortCreatedAt: "created_at",
}

// productOrderClause falls back to insertion order when no sort is requested.
func productOrderClause(sort entity.ProductSort) string {
	column, ok := productSortColumns[sort.Field]
	if !ok {
		return "created_at ASC, id ASC"
	}

	direction := "ASC"
	if sort.Desc {
		direction = "DESC"
	}

	return fmt.Sprintf("%s %s, id ASC", column, direction)
}

func productPatchColumns(patch *entity.ProductPatch) map[string]interface{} {
	columns := map[string]interface{}{}
	if patch == nil {
		return columns
	}

	if patch.Name != nil {
		columns["name"] = *patch.Name
	}
	if patch.DescriptionSet {
		if patch.Description != nil {
			columns["description"] = *patch.Description
		} else {
			columns["description"] = nil
		}
	}
	if patch.Category != nil {
		columns["category"] = *patch.Category
	}
	if patch.Visibility != nil {
		columns["visibility"] = string(*patch.Visibility)
	}
	if patch.Price != nil {
		columns["price"] = *patch.Price
	}
	if patch.DiscountPriceSet {
		if patch.DiscountPrice != nil {
			columns["discount_price"] = decimal.NewNullDecimal(*patch.DiscountPrice)
		} else {
			columns["discount_price"] = decimal.NullDecimal{}
		}
	}
	if patch.Quantity != nil {
		columns["quantity"] = *patch.Quantity
	}

	return columns
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
