package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"catalog-service/pkg/response"
	"catalog-service/pkg/validator"
)

type sanitizer interface {
	Sanitize()
}

// bindJSON decodes the request body into dst, normalizes it when dst knows
// how, and validates it. On failure the error response has been written and
// false is returned.
func bindJSON(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.ValidationError(w, []validator.FieldError{{Field: "body", Message: decodeMessage(err)}})
		return false
	}

	if s, ok := dst.(sanitizer); ok {
		s.Sanitize()
	}

	if err := v.Validate(dst); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}

	return true
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " has the wrong type"
	}
	return "request body must be valid JSON matching the expected field types"
}
