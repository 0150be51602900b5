package dto

import (
	"encoding/json"
	"reflect"
)

// Optional distinguishes a JSON field that was omitted from one sent as null.
// Set is true whenever the key appeared in the payload; Value is nil for null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

type optionalField interface {
	validationValue() interface{}
}

func (o Optional[T]) validationValue() interface{} {
	if o.Value == nil {
		return nil
	}
	return *o.Value
}

// optionalTypeFunc lets the validator check the wrapped value; absent and
// null fields validate as empty.
func optionalTypeFunc(field reflect.Value) interface{} {
	if o, ok := field.Interface().(optionalField); ok {
		return o.validationValue()
	}
	return nil
}
