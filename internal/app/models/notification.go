package models

import "time"

type NotificationEvent string

const (
	NotificationEventCreated   NotificationEvent = "created"
	NotificationEventConfirmed NotificationEvent = "confirmed"
)

// MarkerField is the document field guarding delivery of event.
func (e NotificationEvent) MarkerField() string {
	switch e {
	case NotificationEventCreated:
		return "notifiedAt"
	case NotificationEventConfirmed:
		return "confirmationNotifiedAt"
	}
	return ""
}

func (e NotificationEvent) IsValid() bool {
	return e.MarkerField() != ""
}

// AppointmentNotification is the payload handed to the delivery queue.
type AppointmentNotification struct {
	ID          string            `json:"id"`
	Event       NotificationEvent `json:"event"`
	Appointment Appointment       `json:"appointment"`
	RequestID   string            `json:"request_id,omitempty"`
	EnqueuedAt  time.Time         `json:"enqueued_at"`
	FailedCount int               `json:"failed_count"`
}
