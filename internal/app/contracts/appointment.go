package contracts

import (
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/dto/requests"
	"context"
	"time"
)

// AppointmentRepository is the document store of appointments. Insert must
// reject a second active appointment on the same date and time atomically.
type AppointmentRepository interface {
	EnsureIndexes(ctx context.Context) error
	Insert(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	FindByDateRange(ctx context.Context, startDate, endDate string) ([]models.Appointment, error)
	FindActiveBySlot(ctx context.Context, date, clock string) ([]models.Appointment, error)
	FindByOwner(ctx context.Context, ownerRef string) ([]models.Appointment, error)
	// LatestUpdateInRange returns the newest updatedAt of the appointments
	// between both dates inclusive, or the zero time when there are none.
	LatestUpdateInRange(ctx context.Context, startDate, endDate string) (time.Time, error)
	// UpdateStatus moves the appointment to "to" only while its status is still
	// "from". It returns nil, nil when the precondition no longer holds.
	UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus, at time.Time) (*models.Appointment, error)
	// ClaimNotification sets the marker of event when it is still unset and
	// reports whether this caller won it.
	ClaimNotification(ctx context.Context, id string, event models.NotificationEvent, at time.Time) (bool, error)
	ReleaseNotification(ctx context.Context, id string, event models.NotificationEvent) error
	FindPendingNotifications(ctx context.Context, event models.NotificationEvent, olderThan time.Time, limit int) ([]models.Appointment, error)
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*models.Appointment, error)
	SetAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id string, actor requests.Actor) (*models.Appointment, error)
	FindAppointmentByID(ctx context.Context, id string) (*models.Appointment, error)
	FindAppointmentsByOwner(ctx context.Context, ownerRef string) ([]models.Appointment, error)
}
