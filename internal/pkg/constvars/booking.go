package constvars

// Stable machine-readable error codes returned in error bodies
const (
	ErrCodeMissingField            = "MISSING_FIELD"
	ErrCodeInvalidEmail            = "INVALID_EMAIL"
	ErrCodeInvalidField            = "INVALID_FIELD"
	ErrCodeSlotNotOffered          = "SLOT_NOT_OFFERED"
	ErrCodeSlotTaken               = "SLOT_TAKEN"
	ErrCodeDuplicateActiveBooking  = "DUPLICATE_ACTIVE_BOOKING"
	ErrCodeAvailabilityFetchFailed = "AVAILABILITY_FETCH_FAILED"
	ErrCodeInvalidTransition       = "INVALID_TRANSITION"
	ErrCodeAppointmentNotFound     = "APPOINTMENT_NOT_FOUND"
	ErrCodeUnauthorized            = "UNAUTHORIZED"
	ErrCodeForbidden               = "FORBIDDEN"
	ErrCodeInternal                = "INTERNAL"
	ErrCodeRateLimited             = "RATE_LIMITED"
)

const (
	MongoCollectionAppointments = "appointments"
	MongoIndexActiveSlot        = "uniq_active_slot"
	MongoIndexDate              = "idx_date"
	MongoIndexOwnerCreatedAt    = "idx_owner_created_at"
	MongoIndexDateUpdatedAt     = "idx_date_updated_at"
)

const (
	RedisKeyAvailabilityMonthFormat      = "availability:month:%s:gen:%s"
	RedisKeyAvailabilityGenerationFormat = "availability:month:%s:gen"
	RedisKeyReconciliationLeader         = "notifications:reconciliation:leader"
)

const LimiterGroupBookingCreate = "booking-create"

const (
	NotificationQueueName           = "appointment_notification_queue"
	NotificationDeadLetterQueueName = "appointment_notification_dlq"
)

const (
	DefaultMaxAvailabilityRangeDays = 62
	DefaultMaxParticipants          = 6
)
