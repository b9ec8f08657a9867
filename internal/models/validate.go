// ABOUTME: Form validation for submitted records using go-playground/validator.
// ABOUTME: Failures are reported per field so they can be shown next to the input.
package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/badoux/checkmail"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// validator's email tag accepts some addresses checkmail rejects; require both.
		_ = validate.RegisterValidation("mailformat", func(fl validator.FieldLevel) bool {
			return checkmail.ValidateFormat(fl.Field().String()) == nil
		})
		// Report fields by their json name, which is also the form field name.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// FieldError is a validation failure for one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every failing field of a form.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Message)
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Field returns the message for the named field, or "" if it passed.
func (v ValidationErrors) Field(name string) string {
	for _, fe := range v {
		if fe.Field == name {
			return fe.Message
		}
	}
	return ""
}

// Validate checks a form or record struct. It returns ValidationErrors when
// any field fails, and nil when the value may be stored.
func Validate(form any) error {
	err := formValidator().Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate form: %w", err)
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email", "mailformat":
		return label + " must be a valid email address"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return label + " must be a date (YYYY-MM-DD)"
	default:
		return fmt.Sprintf("%s failed %s check", label, fe.Tag())
	}
}
