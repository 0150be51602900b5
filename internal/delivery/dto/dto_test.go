package dto

import (
	"encoding/json"
	"net/url"
	"testing"

	"catalog-service/pkg/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_TriState(t *testing.T) {
	var absent, null, present UpdateProductRequest

	require.NoError(t, json.Unmarshal([]byte(`{"name":"Widget"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"description":"text","discountPrice":1.25}`), &present))

	assert.False(t, absent.Description.Set)
	assert.False(t, absent.DiscountPrice.Set)

	assert.True(t, null.Description.Set)
	assert.Nil(t, null.Description.Value)

	assert.True(t, present.Description.Set)
	assert.Equal(t, "text", *present.Description.Value)
	assert.True(t, decimal.RequireFromString("1.25").Equal(*present.DiscountPrice.Value))
}

func TestUpdateProductRequest_IsEmpty(t *testing.T) {
	var req UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"sku":"ABC-1"}`), &req))
	assert.True(t, req.IsEmpty())
	assert.NotEmpty(t, req.SKU)

	require.NoError(t, json.Unmarshal([]byte(`{"discountPrice":null}`), &req))
	assert.False(t, req.IsEmpty())
}

func TestSanitize(t *testing.T) {
	blank := "   "
	create := CreateProductRequest{SKU: " ABC-1 ", Name: " Widget ", Category: " tools ", Description: &blank}
	create.Sanitize()

	assert.Equal(t, "ABC-1", create.SKU)
	assert.Equal(t, "Widget", create.Name)
	assert.Equal(t, "tools", create.Category)
	assert.Nil(t, create.Description)

	var update UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":" Gadget ","type":" private ","description":"  "}`), &update))
	update.Sanitize()

	assert.Equal(t, "Gadget", *update.Name)
	assert.Equal(t, "private", *update.Type)
	assert.True(t, update.Description.Set)
	assert.Nil(t, update.Description.Value)
}

func TestParseListProductsQuery_Defaults(t *testing.T) {
	query, errs := ParseListProductsQuery(url.Values{})

	assert.Empty(t, errs)
	assert.Equal(t, 1, query.Page)
	assert.Equal(t, 10, query.Limit)
	assert.Equal(t, "asc", query.Order)
	assert.Nil(t, query.MinPrice)
	assert.Nil(t, query.MaxPrice)
}

func TestParseListProductsQuery_ReportsEveryParseError(t *testing.T) {
	values := url.Values{
		"page":     {"one"},
		"limit":    {"ten"},
		"minPrice": {"low"},
		"maxPrice": {"high"},
	}

	_, errs := ParseListProductsQuery(values)

	assert.Equal(t, []validator.FieldError{
		{Field: "page", Message: "page must be an integer"},
		{Field: "limit", Message: "limit must be an integer"},
		{Field: "minPrice", Message: "minPrice must be a number"},
		{Field: "maxPrice", Message: "maxPrice must be a number"},
	}, errs)
}

func TestParseListProductsQuery_Values(t *testing.T) {
	values := url.Values{
		"page":     {"3"},
		"limit":    {"25"},
		"type":     {" private "},
		"search":   {" lamp "},
		"order":    {"DESC"},
		"maxPrice": {"99.90"},
	}

	query, errs := ParseListProductsQuery(values)

	require.Empty(t, errs)
	assert.Equal(t, 3, query.Page)
	assert.Equal(t, 25, query.Limit)
	assert.Equal(t, "private", query.Type)
	assert.Equal(t, "lamp", query.Search)
	assert.Equal(t, "desc", query.Order)
	assert.True(t, decimal.RequireFromString("99.9").Equal(*query.MaxPrice))
}

func TestParseListAuditLogsQuery(t *testing.T) {
	query, errs := ParseListAuditLogsQuery(url.Values{})
	assert.Empty(t, errs)
	assert.Equal(t, 1, query.Page)
	assert.Equal(t, 20, query.Limit)

	_, errs = ParseListAuditLogsQuery(url.Values{"limit": {"x"}})
	assert.Equal(t, []validator.FieldError{{Field: "limit", Message: "limit must be an integer"}}, errs)
}

func TestRegisteredRules(t *testing.T) {
	v := validator.NewValidator()
	RegisterValidations(v)

	price := decimal.RequireFromString("10")
	discount := decimal.RequireFromString("9.99")
	create := &CreateProductRequest{SKU: "ABC-1", Name: "Widget", Category: "tools", Price: &price, DiscountPrice: &discount}
	assert.NoError(t, v.Validate(create))

	var update UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"discountPrice":null}`), &update))
	assert.NoError(t, v.Validate(&update))

	require.NoError(t, json.Unmarshal([]byte(`{"discountPrice":-1}`), &update))
	err := v.Validate(&update)
	require.Error(t, err)
	assert.Equal(t, "discountPrice", v.FormatValidationErrors(err)[0].Field)
}
