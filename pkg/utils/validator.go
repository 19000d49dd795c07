package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags of a DTO
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors flattens validator errors into field -> message pairs
// for the response details block
func GetValidationErrors(err error) map[string]string {
	result := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		result["error"] = err.Error()
		return result
	}

	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			result[field] = "this field is required"
		case "email":
			result[field] = "must be a valid email address"
		case "min":
			result[field] = "value is too short or too small (min " + fieldErr.Param() + ")"
		case "max":
			result[field] = "value is too long or too large (max " + fieldErr.Param() + ")"
		case "oneof":
			result[field] = "must be one of: " + fieldErr.Param()
		default:
			result[field] = "failed on '" + fieldErr.Tag() + "' validation"
		}
	}

	return result
}
