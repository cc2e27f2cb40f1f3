package utils

import (
	"booking-service/internal/pkg/constvars"
	"context"
	"time"

	"go.uber.org/zap"
)

// LogOperation runs fn and records one line with its duration and outcome.
// Extra fields are attached to both the success and the failure line.
func LogOperation(logger *zap.Logger, operation, requestID string, fn func() error, fields ...zap.Field) error {
	start := time.Now()
	err := fn()

	fields = append(fields,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOperationKey, operation),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		zap.Bool(constvars.LoggingSuccessKey, err == nil),
	)
	if err != nil {
		logger.Error("Operation failed", append(fields, zap.Error(err))...)
		return err
	}
	logger.Info("Operation completed", fields...)
	return nil
}

func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}

// GetOwnerRef returns the subject of a verified bearer token, if any.
func GetOwnerRef(ctx context.Context) string {
	ownerRef, _ := ctx.Value(constvars.CONTEXT_OWNER_REF_KEY).(string)
	return ownerRef
}

func IsOperator(ctx context.Context) bool {
	operator, _ := ctx.Value(constvars.CONTEXT_OPERATOR_KEY).(bool)
	return operator
}
