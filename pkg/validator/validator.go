package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Tags reported by struct-level rules registered from outside this package.
const (
	TagLessThanPrice = "ltprice"
	TagNonEmpty      = "nonempty"
)

var skuPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FieldError is one entry of a validation failure's details.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "schema"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	// Decimals are validated through their canonical string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
		return skuPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("dgt0", decimalRule(func(d decimal.Decimal) bool { return d.IsPositive() }))
	v.RegisterValidation("dgte0", decimalRule(func(d decimal.Decimal) bool { return !d.IsNegative() }))
	v.RegisterValidation("dscale2", decimalRule(func(d decimal.Decimal) bool { return d.Equal(d.Round(2)) }))

	return &CustomValidator{validator: v}
}

func decimalRule(check func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return check(d)
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// RegisterCustomTypeFunc exposes the underlying hook so wrapper types, such as
// optional JSON fields, validate as their inner value.
func (cv *CustomValidator) RegisterCustomTypeFunc(fn validator.CustomTypeFunc, types ...interface{}) {
	cv.validator.RegisterCustomTypeFunc(fn, types...)
}

func (cv *CustomValidator) RegisterStructValidation(fn validator.StructLevelFunc, types ...interface{}) {
	cv.validator.RegisterStructValidation(fn, types...)
}

// FormatValidationErrors flattens a validation failure into field/message pairs.
func (cv *CustomValidator) FormatValidationErrors(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}

	details := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, FieldError{Field: e.Field(), Message: message(e)})
	}
	return details
}

func message(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		if e.Kind() == reflect.String {
			return field + " must be at least " + e.Param() + " characters long"
		}
		return field + " must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return field + " must not exceed " + e.Param() + " characters"
		}
		return field + " must be at most " + e.Param()
	case "gte":
		return field + " must be greater than or equal to " + e.Param()
	case "lte":
		return field + " must be less than or equal to " + e.Param()
	case "oneof":
		return field + " must be one of: " + strings.Join(strings.Fields(e.Param()), ", ")
	case "sku":
		return field + " must be alphanumeric (A-Z, a-z, 0-9, hyphens, underscores)"
	case "dgt0":
		return field + " must be greater than 0"
	case "dgte0":
		return field + " must be greater than or equal to 0"
	case "dscale2":
		return field + " must have at most 2 decimal places"
	case "isdefault":
		return field + " cannot be updated after creation"
	case TagLessThanPrice:
		return field + " must be less than the original price"
	case TagNonEmpty:
		return "at least one field must be provided"
	default:
		return field + " is invalid"
	}
}
