// Package validate wraps go-playground/validator with a shared instance that
// reports fields by their JSON names and renders client-facing messages.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return val
}

// Error is a validation failure on a single field. Only the first failing
// field of a struct is reported.
type Error struct {
	Field string
	Tag   string
	Param string
}

func (e *Error) Error() string {
	switch e.Tag {
	case "required":
		return e.Field + " is required"
	case "email":
		return e.Field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field, strings.ReplaceAll(e.Param, " ", ", "))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field, e.Param)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", e.Field, e.Param)
	case "len", "numeric", "number":
		return e.Field + " has an invalid format"
	case "datetime":
		return e.Field + " must be a date in YYYY-MM-DD format"
	}
	return e.Field + " is invalid"
}

// Struct validates s using its `validate` tags.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &Error{Field: ve[0].Field(), Tag: ve[0].Tag(), Param: ve[0].Param()}
	}
	return err
}

// EchoValidator satisfies echo.Validator so handlers can call c.Validate.
type EchoValidator struct{}

// Validate implements echo.Validator.
func (EchoValidator) Validate(i any) error { return Struct(i) }
