package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
	rules     PatientRules
}

func NewValidator(rules PatientRules) *CustomValidator {
	v := validator.New()
	if err := v.RegisterValidation("storable", validateStorable); err != nil {
		panic(err)
	}
	return &CustomValidator{
		validator: v,
		rules:     rules,
	}
}

// validateStorable backs the "storable" tag: text a record file slot can
// hold and read back.
func validateStorable(fl validator.FieldLevel) bool {
	return StorableText(fl.Field().String())
}

// StorableText reports whether s is valid UTF-8 without control characters
func StorableText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// Rules returns the field bounds this validator enforces
func (cv *CustomValidator) Rules() PatientRules {
	return cv.rules
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ValidationError reports every invalid field of a request
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a ValidationError when it is one
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if ve, ok := AsValidationError(err); ok {
		for field, msg := range ve.Fields {
			errors[field] = msg
		}
		return errors
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "storable":
				errors[field] = field + " must contain only printable characters"
			default:
				errors[field] = fmt.Sprintf("%s is invalid", field)
			}
		}
	}

	return errors
}
