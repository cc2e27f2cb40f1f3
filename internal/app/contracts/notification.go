package contracts

import (
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/dto/requests"
	"context"
)

// NotificationTrigger fires lifecycle notifications without blocking the caller.
type NotificationTrigger interface {
	Fire(ctx context.Context, event models.NotificationEvent, appointment models.Appointment)
	Dispatch(ctx context.Context, event models.NotificationEvent, appointment models.Appointment) error
	Wait()
}

type NotificationPublisher interface {
	Publish(ctx context.Context, notification models.AppointmentNotification) error
}

type AppointmentMailer interface {
	SendAppointmentNotification(ctx context.Context, notification models.AppointmentNotification) error
}

type MailerService interface {
	SendEmail(ctx context.Context, payload *requests.EmailPayload) error
}

// QueuedNotification is a fetched delivery awaiting ack.
type QueuedNotification struct {
	DeliveryTag  uint64
	Notification models.AppointmentNotification
}

// NotificationQueue is the durable hand-off between the trigger and the mail
// delivery worker.
type NotificationQueue interface {
	NotificationPublisher
	FetchN(ctx context.Context, max int) ([]QueuedNotification, error)
	Ack(ctx context.Context, deliveryTag uint64) error
	Reenqueue(ctx context.Context, notification models.AppointmentNotification) error
	EnqueueToDeadQueue(ctx context.Context, notification models.AppointmentNotification) error
}
