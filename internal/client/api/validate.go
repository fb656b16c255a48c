package api

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkPayload schema-checks response data using the struct tags on the
// models. Slices are checked element by element.
func checkPayload(v any) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return checkPayload(rv.Elem().Interface())
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			if err := checkPayload(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	case reflect.Struct:
		return validate.Struct(v)
	}
	return nil
}
