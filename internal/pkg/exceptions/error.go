package exceptions

import (
	"booking-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"runtime"
)

type CustomError struct {
	StatusCode    int         `json:"status_code"`
	Success       bool        `json:"success"`
	Code          string      `json:"code,omitempty"`
	ClientMessage string      `json:"message"`
	Retryable     bool        `json:"retryable,omitempty"`
	Details       interface{} `json:"details,omitempty"`
	DevMessage    string      `json:"dev_message,omitempty"`
	Locations     []Location  `json:"locations,omitempty"`
	cause         error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// WithCode tags the error with a stable machine-readable code.
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithDetails attaches structured data that is rendered in the error body.
func (e *CustomError) WithDetails(details interface{}) *CustomError {
	e.Details = details
	return e
}

// AsRetryable marks the error as transient.
func (e *CustomError) AsRetryable() *CustomError {
	e.Retryable = true
	return e
}

// BuildNewCustomError wraps err with the caller location. When err is already a
// CustomError its locations are carried over so the full path gets logged.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(2)

	customErr := &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{location},
		cause:         err,
	}

	if err != nil {
		customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
		var previous *CustomError
		if errors.As(err, &previous) {
			customErr.Locations = append(customErr.Locations, previous.Locations...)
			customErr.DevMessage = fmt.Sprintf("%s: %s", devMessage, previous.DevMessage)
		}
	}
	return customErr
}

// HasCode reports whether any CustomError in the chain carries code.
func HasCode(err error, code string) bool {
	for err != nil {
		var customErr *CustomError
		if !errors.As(err, &customErr) {
			return false
		}
		if customErr.Code == code {
			return true
		}
		err = customErr.cause
	}
	return false
}

// CodeOf returns the code of the outermost CustomError in the chain.
func CodeOf(err error) string {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Code
	}
	return ""
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ErrFileLocationUnknown,
			Line:         constvars.ErrLineLocationUnknown,
			FunctionName: constvars.ErrFunctionNameUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
