package models

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ActiveAppointmentStatuses are the statuses that hold a slot.
var ActiveAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
}

func ParseAppointmentStatus(value string) (AppointmentStatus, bool) {
	switch AppointmentStatus(value) {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCancelled:
		return AppointmentStatus(value), true
	}
	return "", false
}

// IsActive reports whether the status occupies its slot.
func (s AppointmentStatus) IsActive() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCancelled},
}

// CanTransition reports whether from -> to is a legal lifecycle move.
// Cancelled is terminal and nothing moves back to pending.
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type ServiceKind string

const (
	ServiceKindExpress  ServiceKind = "express"
	ServiceKindComplete ServiceKind = "complete"
)

type Customer struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

type Appointment struct {
	ID                     string            `json:"id" bson:"_id"`
	Date                   string            `json:"date" bson:"date"`
	Time                   string            `json:"time" bson:"time"`
	Customer               Customer          `json:"customer" bson:"customer"`
	ServiceKind            ServiceKind       `json:"serviceKind" bson:"serviceKind"`
	DurationMinutes        int               `json:"durationMinutes" bson:"durationMinutes"`
	ParticipantCount       int               `json:"participantCount" bson:"participantCount"`
	Notes                  string            `json:"notes,omitempty" bson:"notes,omitempty"`
	Status                 AppointmentStatus `json:"status" bson:"status"`
	OwnerRef               *string           `json:"ownerRef" bson:"ownerRef"`
	SlotKey                string            `json:"-" bson:"slotKey,omitempty"`
	NotifiedAt             *time.Time        `json:"notifiedAt,omitempty" bson:"notifiedAt,omitempty"`
	ConfirmationNotifiedAt *time.Time        `json:"confirmationNotifiedAt,omitempty" bson:"confirmationNotifiedAt,omitempty"`
	TimeModel              `bson:",inline"`
}

// BuildSlotKey is the uniqueness key held by an active appointment.
func BuildSlotKey(date, clock string) string {
	return date + "|" + clock
}

// StartsAt resolves the appointment start in loc.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation("2006-01-02 15:04", a.Date+" "+a.Time, loc)
}

// NotificationMarker returns the idempotency marker for event.
func (a *Appointment) NotificationMarker(event NotificationEvent) *time.Time {
	switch event {
	case NotificationEventCreated:
		return a.NotifiedAt
	case NotificationEventConfirmed:
		return a.ConfirmationNotifiedAt
	}
	return nil
}
