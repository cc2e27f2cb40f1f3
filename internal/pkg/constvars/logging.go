package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingErrorTypeKey          = "error_type"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingQueueNameKey          = "queue_name"
	LoggingAppointmentIDKey      = "appointment_id"
	LoggingAppointmentIDsKey     = "appointment_ids"
	LoggingAppointmentDateKey    = "appointment_date"
	LoggingAppointmentTimeKey    = "appointment_time"
	LoggingAppointmentStatusKey  = "appointment_status"
	LoggingNotificationEventKey  = "notification_event"
	LoggingStartDateKey          = "start_date"
	LoggingEndDateKey            = "end_date"
	LoggingMonthKey              = "month"
	LoggingCountKey              = "count"
	LoggingOwnerRefKey           = "owner_ref"
	LoggingCacheHitKey           = "cache_hit"
	LoggingOperationKey          = "operation"
	LoggingResponseLengthKey     = "response_length"
	LoggingRetryAfterKey         = "retry_after_seconds"
)
