package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
)

var validate *validator.Validate

// NewValidator builds the shared validator. Field names in errors follow the
// json tags so the details map matches the request body the client sent.
func NewValidator() *validator.Validate {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return validate
}

func GetValidator() *validator.Validate {
	return validate
}

// ValidateRequest runs struct validation on an API request
func ValidateRequest(req interface{}) error {
	if validate == nil {
		return ierr.NewError("validator not initialized").
			WithHint("Validator must be initialized before using it").
			Mark(ierr.ErrSystem)
	}

	if err := validate.Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, fieldErr := range validateErrs {
				details[fieldErr.Field()] = fieldErr.Tag()
			}
		}
		return ierr.WithError(err).
			WithHint("Request validation failed").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
