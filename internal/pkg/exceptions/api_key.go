package exceptions

import (
	"booking-service/internal/pkg/constvars"
	"net/http"
)

func ErrInvalidAPIKey(err error) *CustomError {
	return BuildNewCustomError(err, http.StatusUnauthorized, "Invalid API key", constvars.ErrDevAPIKeyInvalid).WithCode(constvars.ErrCodeUnauthorized)
}

func ErrAPIKeyRequired(err error) *CustomError {
	return BuildNewCustomError(err, http.StatusUnauthorized, "API key is required", constvars.ErrDevAPIKeyMissing).WithCode(constvars.ErrCodeUnauthorized)
}
