package utils

import (
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/dto/responses"
	"booking-service/internal/pkg/exceptions"
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// BuildErrorResponse renders err as the error envelope. Errors that are not
// a *exceptions.CustomError become a generic 500. Developer details are only
// included outside production.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	var customErr *exceptions.CustomError
	if !errors.As(err, &customErr) {
		log.Error(err.Error())
		writeJSON(w, constvars.StatusInternalServerError, exceptions.CustomError{
			StatusCode:    constvars.StatusInternalServerError,
			ClientMessage: constvars.ErrClientSomethingWrongWithApplication,
		})
		return
	}

	fields := []zap.Field{
		zap.String(constvars.LoggingErrorTypeKey, customErr.Code),
		zap.Int(constvars.LoggingStatusCodeKey, customErr.StatusCode),
		zap.Any("locations", customErr.Locations),
	}
	if customErr.StatusCode >= constvars.StatusInternalServerError {
		log.Error(customErr.DevMessage, fields...)
	} else {
		log.Warn(customErr.DevMessage, fields...)
	}

	if seconds := retryAfter(customErr); seconds > 0 {
		w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(seconds))
	}

	response := exceptions.CustomError{
		StatusCode:    customErr.StatusCode,
		ClientMessage: customErr.ClientMessage,
		Code:          customErr.Code,
		Retryable:     customErr.Retryable,
		Details:       customErr.Details,
	}
	if GetEnvString("APP_ENV", constvars.AppEnvDevelopment) != constvars.AppEnvProduction {
		response.DevMessage = customErr.DevMessage
		response.Locations = customErr.Locations
	}
	writeJSON(w, customErr.StatusCode, response)
}

// retryAfter derives the Retry-After value for throttled and unavailable
// responses.
func retryAfter(customErr *exceptions.CustomError) int {
	if !customErr.Retryable {
		return 0
	}
	switch customErr.StatusCode {
	case constvars.StatusTooManyRequests:
		if details, ok := customErr.Details.(map[string]int); ok && details["retryAfterSeconds"] > 0 {
			return details["retryAfterSeconds"]
		}
		return 1
	case constvars.StatusServiceUnavailable:
		return 1
	}
	return 0
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
