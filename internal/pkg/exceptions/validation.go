package exceptions

import (
	"booking-service/internal/pkg/constvars"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInputValidation turns a validator failure into the typed booking error of
// its first offending field: a missing value, a malformed email, or a generic
// invalid field.
func ErrInputValidation(err error) *CustomError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevValidationFailed).WithCode(constvars.ErrCodeInvalidField)
	}

	firstErr := validationErrors[0]
	field := fieldPath(firstErr)
	switch firstErr.Tag() {
	case "required":
		return ErrMissingField(err, field)
	case "email":
		return ErrInvalidEmail(err)
	default:
		return ErrInvalidField(err, field, FormatFirstValidationError(err))
	}
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		firstErr := validationErrors[0]
		tag := firstErr.Tag()
		customMessage, ok := constvars.CustomValidationErrorMessages[tag]
		if !ok {
			customMessage = "is invalid"
		}

		if constvars.TagsWithParams[tag] {
			if tag == "oneof" {
				customMessage = strings.Replace(customMessage, "%s", strings.Join(strings.Fields(firstErr.Param()), ", "), 1)
			} else {
				customMessage = strings.Replace(customMessage, "%s", firstErr.Param(), 1)
			}
		}
		return fieldPath(firstErr) + " " + customMessage
	}
	return constvars.ErrDevInvalidInput
}

// fieldPath renders the json path of the field without the root struct name,
// e.g. "customer.email".
func fieldPath(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		namespace = namespace[idx+1:]
	}
	if namespace == "" {
		return fieldErr.Field()
	}
	return namespace
}
