package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	SKU      string           `json:"sku" validate:"required,min=3,max=50,sku"`
	Price    *decimal.Decimal `json:"price" validate:"required,dgt0,dscale2"`
	Discount *decimal.Decimal `json:"discountPrice" validate:"omitempty,dgte0,dscale2"`
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func fieldsOf(details []FieldError) map[string]string {
	out := map[string]string{}
	for _, d := range details {
		out[d.Field] = d.Message
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&item{SKU: "ABC-1_x", Price: dec("10.50"), Discount: dec("0")}))
	assert.NoError(t, v.Validate(&item{SKU: "ABC", Price: dec("1.500")}), "trailing zeros are not extra precision")
}

func TestValidate_DecimalRules(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&item{SKU: "AB", Price: dec("0"), Discount: dec("-1")})
	require.Error(t, err)

	got := fieldsOf(v.FormatValidationErrors(err))
	assert.Equal(t, "sku must be at least 3 characters long", got["sku"])
	assert.Equal(t, "price must be greater than 0", got["price"])
	assert.Equal(t, "discountPrice must be greater than or equal to 0", got["discountPrice"])

	err = v.Validate(&item{SKU: "bad sku!", Price: dec("1.999")})
	got = fieldsOf(v.FormatValidationErrors(err))
	assert.Equal(t, "sku must be alphanumeric (A-Z, a-z, 0-9, hyphens, underscores)", got["sku"])
	assert.Equal(t, "price must have at most 2 decimal places", got["price"])
}

func TestValidate_RequiredPointer(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&item{SKU: "ABC"})
	got := fieldsOf(v.FormatValidationErrors(err))
	assert.Equal(t, "price is required", got["price"])
	assert.NotContains(t, got, "discountPrice")
}

type pair struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

func TestRegisterStructValidation(t *testing.T) {
	v := NewValidator()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		p := sl.Current().Interface().(pair)
		if p.Low >= p.High {
			sl.ReportError(p.Low, "low", "Low", TagLessThanPrice, "")
		}
	}, pair{})

	assert.NoError(t, v.Validate(&pair{Low: 1, High: 2}))

	err := v.Validate(&pair{Low: 2, High: 2})
	require.Error(t, err)
	assert.Equal(t, []FieldError{{Field: "low", Message: "low must be less than the original price"}}, v.FormatValidationErrors(err))
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	v := NewValidator()
	assert.Equal(t, []FieldError{{Field: "body", Message: "boom"}}, v.FormatValidationErrors(errors.New("boom")))
}
