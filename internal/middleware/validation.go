package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/familyhub/portal/internal/pkg/validation"
)

// RegisterValidators adds the custom form rules to gin's validator and makes
// validation errors name fields the way forms label them
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := validation.Register(v); err != nil {
		return err
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		name = strings.ReplaceAll(name, "_", " ")
		return strings.ToUpper(name[:1]) + name[1:]
	})
	return nil
}

// ValidationMessage turns a binding error into a single toast line
func ValidationMessage(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return formatValidationError(errs[0])
	}
	return "Please check the form and try again"
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "url":
		return e.Field() + " must be a valid URL"
	case "datetime":
		return e.Field() + " must be a valid date"
	case validation.TagPhone:
		return e.Field() + " must be a valid phone number"
	case validation.TagNotBlank:
		return e.Field() + " cannot be blank"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
