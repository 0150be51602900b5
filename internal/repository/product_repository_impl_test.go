package repository

import (
	"testing"

	"catalog-service/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB builds SQL without a server so the filter mapping can be asserted.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		postgres.New(postgres.Config{DSN: "host=localhost user=catalog dbname=catalog sslmode=disable"}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true},
	)
	require.NoError(t, err)
	return db
}

func TestApplyProductFilter_AllCriteria(t *testing.T) {
	db := newDryRunDB(t)
	minPrice := decimal.RequireFromString("10")
	maxPrice := decimal.RequireFromString("20.50")

	filter := &entity.ProductFilter{
		Category:   "books",
		Visibility: entity.VisibilityPublic,
		Search:     "50%_off",
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
	}

	stmt := applyProductFilter(db.Model(&entity.Product{}), filter).Find(&[]entity.Product{}).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `FROM "products"`)
	assert.Contains(t, sql, "category = $1")
	assert.Contains(t, sql, "visibility = $2")
	assert.Contains(t, sql, "name ILIKE $3 OR description ILIKE $4")
	assert.Contains(t, sql, "price >= $5")
	assert.Contains(t, sql, "price <= $6")

	require.Len(t, stmt.Vars, 6)
	assert.Equal(t, "books", stmt.Vars[0])
	assert.Equal(t, "public", stmt.Vars[1])
	assert.Equal(t, `%50\%\_off%`, stmt.Vars[2])
	assert.Equal(t, `%50\%\_off%`, stmt.Vars[3])
	assert.True(t, minPrice.Equal(stmt.Vars[4].(decimal.Decimal)))
	assert.True(t, maxPrice.Equal(stmt.Vars[5].(decimal.Decimal)))
}

func TestApplyProductFilter_Empty(t *testing.T) {
	db := newDryRunDB(t)

	for _, filter := range []*entity.ProductFilter{nil, {}} {
		stmt := applyProductFilter(db.Model(&entity.Product{}), filter).Find(&[]entity.Product{}).Statement

		assert.NotContains(t, stmt.SQL.String(), "WHERE")
		assert.Empty(t, stmt.Vars)
	}
}

func TestApplyProductFilter_SameForCount(t *testing.T) {
	db := newDryRunDB(t)
	filter := &entity.ProductFilter{Category: "books", Visibility: entity.VisibilityPublic}

	var total int64
	stmt := applyProductFilter(db.Model(&entity.Product{}), filter).Count(&total).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "count(*)")
	assert.Contains(t, sql, "category = $1 AND visibility = $2")
}

func TestProductOrderClause(t *testing.T) {
	tests := []struct {
		name string
		sort entity.ProductSort
		want string
	}{
		{"unset uses insertion order", entity.ProductSort{}, "created_at ASC, id ASC"},
		{"name asc", entity.ProductSort{Field: entity.ProductSortName}, "name ASC, id ASC"},
		{"price desc", entity.ProductSort{Field: entity.ProductSortPrice, Desc: true}, "price DESC, id ASC"},
		{"quantity asc", entity.ProductSort{Field: entity.ProductSortQuantity}, "quantity ASC, id ASC"},
		{"createdAt maps to column", entity.ProductSort{Field: entity.ProductSortCreatedAt, Desc: true}, "created_at DESC, id ASC"},
		{"unknown field ignored", entity.ProductSort{Field: "sku; DROP TABLE products"}, "created_at ASC, id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, productOrderClause(tt.sort))
		})
	}
}

func TestProductPatchColumns(t *testing.T) {
	name := "New name"
	price := decimal.RequireFromString("99.99")
	qty := 0
	visibility := entity.VisibilityPrivate

	columns := productPatchColumns(&entity.ProductPatch{
		Name:             &name,
		Visibility:       &visibility,
		Price:            &price,
		Quantity:         &qty,
		DescriptionSet:   true,
		DiscountPriceSet: true,
	})

	assert.Equal(t, "New name", columns["name"])
	assert.Equal(t, "private", columns["visibility"])
	assert.Equal(t, price, columns["price"])
	assert.Equal(t, 0, columns["quantity"])
	assert.Nil(t, columns["description"])
	assert.Contains(t, columns, "description")
	assert.Equal(t, decimal.NullDecimal{}, columns["discount_price"])
	assert.NotContains(t, columns, "category")
	assert.NotContains(t, columns, "sku")
}

func TestProductPatchColumns_Empty(t *testing.T) {
	assert.Empty(t, productPatchColumns(nil))
	assert.Empty(t, productPatchColumns(&entity.ProductPatch{}))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "plain", escapeLike("plain"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}
