package shared

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gestistock/gestistock/internal/i18n"
)

// structCheck is the process-wide struct validator. Field names in errors
// come from the json tag so they match the submitted form field names.
var structCheck = newStructCheck()

func newStructCheck() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs the declarative `validate` tags of s and folds every
// failure into a ValidationError with a French message. The returned error
// is empty, never nil, so callers can keep adding relational checks to it.
func ValidateStruct(s any) *ValidationError {
	verr := NewValidationError()
	if err := structCheck.Struct(s); err != nil {
		var ferrs validator.ValidationErrors
		if errors.As(err, &ferrs) {
			for _, fe := range ferrs {
				verr.Add(fe.Field(), i18n.FieldError(fe))
			}
		}
	}
	return verr
}
