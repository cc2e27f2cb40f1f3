package exceptions

import (
	"booking-service/internal/pkg/constvars"
	"fmt"
)

var (
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON).WithCode(constvars.ErrCodeInvalidField)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON).WithCode(constvars.ErrCodeInternal)
	}
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamValidationFailed, paramName)).WithCode(constvars.ErrCodeInvalidField)
	}
	ErrQueryParamValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, fmt.Sprintf("%s is invalid", paramName), fmt.Sprintf(constvars.ErrDevQueryParamValidationFailed, paramName)).WithCode(constvars.ErrCodeInvalidField)
	}
	ErrTooManyRequests = func(resource string, retryAfterSecs int) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, fmt.Sprintf(constvars.ErrDevRateLimited, resource)).WithCode(constvars.ErrCodeRateLimited).WithDetails(map[string]int{"retryAfterSeconds": retryAfterSecs}).AsRetryable()
	}
	ErrRequestBodyTooLarge = func(err error, limit int64) *CustomError {
		return BuildNewCustomError(err, constvars.StatusRequestEntityTooLarge, constvars.ErrClientRequestBodyTooLarge, fmt.Sprintf(constvars.ErrDevRequestBodyTooLarge, limit)).WithCode(constvars.ErrCodeInvalidField)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded).AsRetryable()
	}

	// Auth
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenMissing).WithCode(constvars.ErrCodeUnauthorized)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired).WithCode(constvars.ErrCodeUnauthorized)
	}
	ErrNotAppointmentOwner = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, constvars.ErrDevNotAppointmentOwner).WithCode(constvars.ErrCodeForbidden)
	}

	// Booking validation
	ErrMissingField = func(err error, field string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, fmt.Sprintf(constvars.ErrClientMissingField, field), fmt.Sprintf(constvars.ErrDevMissingField, field)).WithCode(constvars.ErrCodeMissingField)
	}
	ErrInvalidEmail = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidEmail, constvars.ErrDevInvalidEmail).WithCode(constvars.ErrCodeInvalidEmail)
	}
	ErrInvalidField = func(err error, field, clientMessage string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, clientMessage, fmt.Sprintf(constvars.ErrDevInvalidField, field)).WithCode(constvars.ErrCodeInvalidField)
	}
	ErrServiceKindNotOffered = func(kind string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientServiceKindNotOffered, fmt.Sprintf(constvars.ErrDevServiceKindNotOffered, kind)).WithCode(constvars.ErrCodeInvalidField)
	}
	ErrTooManyParticipants = func(max int) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, fmt.Sprintf(constvars.ErrClientTooManyParticipants, max), fmt.Sprintf(constvars.ErrDevInvalidField, "participantCount")).WithCode(constvars.ErrCodeInvalidField)
	}
	ErrUnknownStatus = func(status string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevUnknownStatus, status)).WithCode(constvars.ErrCodeInvalidField)
	}
	ErrInvalidDateRange = func(err error, start, end string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidDateRange, fmt.Sprintf(constvars.ErrDevInvalidDateRange, start, end)).WithCode(constvars.ErrCodeInvalidField)
	}

	// Booking catalog and conflicts
	ErrSlotNotOffered = func(date, time string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientSlotNotOffered, fmt.Sprintf(constvars.ErrDevSlotNotOffered, date, time)).WithCode(constvars.ErrCodeSlotNotOffered)
	}
	ErrDateClosed = func(date string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientDateClosed, fmt.Sprintf(constvars.ErrDevDateClosed, date)).WithCode(constvars.ErrCodeSlotNotOffered)
	}
	ErrDateInPast = func(date, time string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientDateInPast, fmt.Sprintf(constvars.ErrDevDateInPast, date, time)).WithCode(constvars.ErrCodeSlotNotOffered)
	}
	ErrSlotTaken = func(err error, date, time string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientSlotTaken, fmt.Sprintf(constvars.ErrDevSlotTaken, date, time)).WithCode(constvars.ErrCodeSlotTaken)
	}
	ErrDuplicateActiveBooking = func(date, time string, count int) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevDuplicateActiveBooking, date, time, count)).WithCode(constvars.ErrCodeDuplicateActiveBooking)
	}
	ErrAvailabilityFetchFailed = func(err error, operation, startDate, endDate string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientAvailabilityUnavailable, fmt.Sprintf(constvars.ErrDevAvailabilityFetchFailed, operation, startDate, endDate)).WithCode(constvars.ErrCodeAvailabilityFetchFailed).AsRetryable()
	}

	// Lifecycle
	ErrInvalidTransition = func(from, to string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, fmt.Sprintf(constvars.ErrClientInvalidTransition, from, to), fmt.Sprintf(constvars.ErrDevInvalidTransition, from, to)).WithCode(constvars.ErrCodeInvalidTransition)
	}
	ErrAppointmentNotFound = func(id string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientAppointmentNotFound, fmt.Sprintf(constvars.ErrDevAppointmentNotFound, id)).WithCode(constvars.ErrCodeAppointmentNotFound)
	}
	ErrNotificationDispatch = func(err error, event string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevNotificationDispatchFailed, event)).AsRetryable()
	}
	ErrNotificationPayloadUnreadable = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevNotificationPayloadUnreadable)
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument).AsRetryable()
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments).AsRetryable()
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument).AsRetryable()
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument).AsRetryable()
	}
	ErrMongoDBCreateIndex = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCreateIndex)
	}

	// Redis
	ErrRedisGetNoData = func(err error, redisKey string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGetNoData, redisKey))
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisIncrement = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisIncrementValue)
	}
	ErrRedisExpire = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisExpire)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName)).AsRetryable()
	}
	ErrRabbitMQConsumeMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQConsumeMessage, queueName)).AsRetryable()
	}

	// SMTP
	ErrSMTPSendEmail = func(err error, recipient string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevSMTPSendEmail, recipient)).AsRetryable()
	}
	ErrBuildCalendarInvite = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevBuildCalendar)
	}
)
