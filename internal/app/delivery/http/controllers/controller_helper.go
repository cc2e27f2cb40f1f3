package controllers

import (
	"booking-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const requestTimeout = 10 * time.Second

// decodeJSONBody reads the request body into dst. A body cut off by the body
// limit middleware is reported as too large rather than malformed.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return exceptions.ErrRequestBodyTooLarge(err, maxBytesErr.Limit)
		}
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, exceptions.ErrQueryParamValidation(errors.New("missing query parameter"), name)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, exceptions.ErrQueryParamValidation(err, name)
	}
	return value, nil
}

func queryString(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return "", exceptions.ErrQueryParamValidation(errors.New("missing query parameter"), name)
	}
	return value, nil
}

func mapContextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return exceptions.ErrServerDeadlineExceeded(err)
	}
	return err
}
