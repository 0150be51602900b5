package dto

import (
	"net/url"
	"strconv"
	"strings"

	"catalog-service/pkg/validator"

	playground "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidations installs the request rules that span several fields.
func RegisterValidations(v *validator.CustomValidator) {
	v.RegisterCustomTypeFunc(optionalTypeFunc, Optional[string]{}, Optional[decimal.Decimal]{})
	v.RegisterStructValidation(createProductStructLevel, CreateProductRequest{})
	v.RegisterStructValidation(updateProductStructLevel, UpdateProductRequest{})
}

func createProductStructLevel(sl playground.StructLevel) {
	req := sl.Current().Interface().(CreateProductRequest)
	if req.Price == nil || req.DiscountPrice == nil {
		return
	}
	if req.DiscountPrice.GreaterThanOrEqual(*req.Price) {
		sl.ReportError(req.DiscountPrice.String(), "discountPrice", "DiscountPrice", validator.TagLessThanPrice, "")
	}
}

func updateProductStructLevel(sl playground.StructLevel) {
	req := sl.Current().Interface().(UpdateProductRequest)
	if req.IsEmpty() && len(req.SKU) == 0 {
		sl.ReportError("", "body", "body", validator.TagNonEmpty, "")
		return
	}
	if req.Price == nil || req.DiscountPrice.Value == nil {
		return
	}
	if req.DiscountPrice.Value.GreaterThanOrEqual(*req.Price) {
		sl.ReportError(req.DiscountPrice.Value.String(), "discountPrice", "DiscountPrice", validator.TagLessThanPrice, "")
	}
}

// ParseListProductsQuery applies defaults and converts numeric parameters.
// Values that cannot be parsed are reported as field errors; range checks are
// left to the validator.
func ParseListProductsQuery(values url.Values) (*ListProductsQuery, []validator.FieldError) {
	query := &ListProductsQuery{
		Page:     1,
		Limit:    10,
		Category: strings.TrimSpace(values.Get("category")),
		Type:     strings.TrimSpace(values.Get("type")),
		Search:   strings.TrimSpace(values.Get("search")),
		Sort:     strings.TrimSpace(values.Get("sort")),
		Order:    "asc",
	}
	var errs []validator.FieldError

	errs = parseIntParam(values, "page", &query.Page, errs)
	errs = parseIntParam(values, "limit", &query.Limit, errs)
	if raw := strings.TrimSpace(values.Get("order")); raw != "" {
		query.Order = strings.ToLower(raw)
	}

	bounds := []struct {
		field  string
		target **decimal.Decimal
	}{
		{"minPrice", &query.MinPrice},
		{"maxPrice", &query.MaxPrice},
	}
	for _, b := range bounds {
		raw := values.Get(b.field)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, validator.FieldError{Field: b.field, Message: b.field + " must be a number"})
			continue
		}
		*b.target = &d
	}

	return query, errs
}

// ParseListAuditLogsQuery reads page and limit, defaulting to the first page of 20.
func ParseListAuditLogsQuery(values url.Values) (*ListAuditLogsQuery, []validator.FieldError) {
	query := &ListAuditLogsQuery{Page: 1, Limit: 20}
	var errs []validator.FieldError

	errs = parseIntParam(values, "page", &query.Page, errs)
	errs = parseIntParam(values, "limit", &query.Limit, errs)

	return query, errs
}

func parseIntParam(values url.Values, field string, target *int, errs []validator.FieldError) []validator.FieldError {
	raw := values.Get(field)
	if raw == "" {
		return errs
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return append(errs, validator.FieldError{Field: field, Message: field + " must be an integer"})
	}
	*target = n
	return errs
}

func trimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
