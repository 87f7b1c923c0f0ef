package validation

import (
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/voxrelay/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// FieldError describes a single failed field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report json names so messages match the request body.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("httpurl", isHTTPURL)
	})
	return validate
}

// isHTTPURL accepts absolute http or https URLs with a host.
func isHTTPURL(fl validator.FieldLevel) bool {
	return IsHTTPURL(fl.Field().String())
}

// IsHTTPURL reports whether s is an absolute http or https URL with a host.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Validate validates a struct using its `validate` tags. When every failure
// is a missing required field the error code is MISSING_FIELD, otherwise
// INVALID_INPUT.
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed").WithCause(err)
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	onlyRequired := true

	for _, e := range validationErrors {
		msg := formatValidationError(e)
		fieldErrors = append(fieldErrors, FieldError{Field: e.Field(), Message: msg})
		messages = append(messages, e.Field()+": "+msg)
		if e.Tag() != "required" {
			onlyRequired = false
		}
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	if onlyRequired {
		appErr.Code = errors.ErrCodeMissingField
	}
	appErr.Details = map[string]any{"fields": fieldErrors}
	return appErr
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "httpurl":
		return "must be an http or https URL"
	case "base64":
		return "must be base64 encoded"
	case "oneof":
		return "must be one of: " + e.Param()
	case "max":
		return "must be at most " + e.Param() + " characters"
	default:
		return "is invalid"
	}
}
