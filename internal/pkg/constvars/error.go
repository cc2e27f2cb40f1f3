package constvars

// Validation messages, keyed by validator tag
var CustomValidationErrorMessages = map[string]string{
	"required":   "is required",
	"email":      "must be a valid email",
	"min":        "must be at least %s",
	"max":        "must be at most %s",
	"oneof":      "must be one of %s",
	"iso_date":   "must be a date formatted as YYYY-MM-DD",
	"clock_time": "must be a time formatted as HH:MM",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientMissingField                  = "%s is required"
	ErrClientInvalidEmail                  = "email must be a valid email address"
	ErrClientSlotNotOffered                = "the selected time is not offered on that date"
	ErrClientDateClosed                    = "the business is closed on the selected date"
	ErrClientDateInPast                    = "the selected date and time are already in the past"
	ErrClientSlotTaken                     = "the selected time has just been booked, please pick another one"
	ErrClientAvailabilityUnavailable       = "availability is temporarily unavailable, please try again"
	ErrClientInvalidTransition             = "the appointment cannot be moved from %s to %s"
	ErrClientAppointmentNotFound           = "appointment not found"
	ErrClientServiceKindNotOffered         = "the selected service is not offered"
	ErrClientTooManyParticipants           = "participantCount must be at most %d"
	ErrClientInvalidDateRange              = "the requested date range is invalid"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientRequestBodyTooLarge           = "the request body is too large"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevURLParamValidationFailed   = "url param %s validation failed"
	ErrDevQueryParamValidationFailed = "query param %s validation failed"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevRateLimited                = "rate limit exceeded for %s"
	ErrDevRequestBodyTooLarge        = "request body exceeds %d bytes"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"
	ErrDevAPIKeyMissing             = "api key missing"
	ErrDevAPIKeyInvalid             = "api key invalid"
	ErrDevNotAppointmentOwner       = "requester does not own the appointment"

	// Booking messages
	ErrDevMissingField                  = "missing required field %s"
	ErrDevInvalidEmail                  = "email failed shape validation"
	ErrDevInvalidField                  = "field %s failed validation"
	ErrDevSlotNotOffered                = "slot %s %s is not a catalog member"
	ErrDevDateClosed                    = "date %s is closed"
	ErrDevDateInPast                    = "slot %s %s is in the past"
	ErrDevSlotTaken                     = "slot %s %s already holds an active appointment"
	ErrDevDuplicateActiveBooking        = "slot %s %s holds %d active appointments"
	ErrDevAvailabilityFetchFailed       = "availability fetch failed during %s for %s..%s"
	ErrDevInvalidTransition             = "transition %s -> %s is not allowed"
	ErrDevAppointmentNotFound           = "appointment %s not found"
	ErrDevUnknownStatus                 = "unknown appointment status %s"
	ErrDevServiceKindNotOffered         = "service kind %s is not offered"
	ErrDevInvalidDateRange              = "invalid date range %s..%s"
	ErrDevNotificationDispatchFailed    = "notification dispatch failed for %s"
	ErrDevNotificationPayloadUnreadable = "notification payload unreadable"

	// MongoDB messages
	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBFailedToCreateIndex      = "failed to create index"

	// Redis messages
	ErrDevRedisGetNoData      = "failed to get data from redis with key %s"
	ErrDevRedisSetData        = "failed to set data into redis"
	ErrDevRedisDeleteData     = "failed to delete data from redis"
	ErrDevRedisIncrementValue = "failed to increment value in redis"
	ErrDevRedisExpire         = "failed to set expiry in redis"
	ErrDevRedisUnlock         = "failed to release redis lock"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"
	ErrDevRabbitMQConsumeMessage = "failed to consume message from queue %s"

	// SMTP messages
	ErrDevSMTPSendEmail = "failed to send email to %s"
	ErrDevBuildCalendar = "failed to build calendar invite"
)

const (
	ErrFileLocationUnknown = "unknown file"
	ErrLineLocationUnknown = 0
	ErrFunctionNameUnknown = "unknown function"
)
