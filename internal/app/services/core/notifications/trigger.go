package notifications

import (
	"booking-service/internal/app/config"
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultDispatchTimeout = 15 * time.Second

// Trigger hands lifecycle events to the notification collaborator. Each
// (appointment, event) pair is delivered at most once: the per-event marker
// on the stored appointment is claimed before publishing and released again
// when publishing fails, so reconciliation can retry it.
type Trigger struct {
	AppointmentRepository contracts.AppointmentRepository
	Publisher             contracts.NotificationPublisher
	DispatchTimeout       time.Duration
	Now                   func() time.Time
	Log                   *zap.Logger
	wg                    sync.WaitGroup
}

var _ contracts.NotificationTrigger = (*Trigger)(nil)

func NewTrigger(
	appointmentRepository contracts.AppointmentRepository,
	publisher contracts.NotificationPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *Trigger {
	timeout := time.Duration(internalConfig.Notification.DispatchTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	return &Trigger{
		AppointmentRepository: appointmentRepository,
		Publisher:             publisher,
		DispatchTimeout:       timeout,
		Now:                   time.Now,
		Log:                   logger,
	}
}

// Fire dispatches in the background. It is detached from the caller's
// cancellation and never reports failure back; failures are logged.
func (t *Trigger) Fire(ctx context.Context, event models.NotificationEvent, appointment models.Appointment) {
	detached := context.WithoutCancel(ctx)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		dispatchCtx, cancel := context.WithTimeout(detached, t.DispatchTimeout)
		defer cancel()

		if err := t.Dispatch(dispatchCtx, event, appointment); err != nil {
			requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			t.Log.Error("Trigger.Fire notification dispatch failed, left for reconciliation",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.String(constvars.LoggingNotificationEventKey, string(event)),
				zap.Error(err),
			)
		}
	}()
}

// Dispatch claims the marker of event and publishes the notification. An
// already claimed marker is a silent no-op.
func (t *Trigger) Dispatch(ctx context.Context, event models.NotificationEvent, appointment models.Appointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	t.Log.Info("Trigger.Dispatch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingNotificationEventKey, string(event)),
	)

	if !event.IsValid() {
		return exceptions.ErrNotificationDispatch(fmt.Errorf("unknown event %q", event), string(event))
	}

	claimedAt := t.Now().UTC()
	claimed, err := t.AppointmentRepository.ClaimNotification(ctx, appointment.ID, event, claimedAt)
	if err != nil {
		return exceptions.ErrNotificationDispatch(err, string(event))
	}
	if !claimed {
		t.Log.Info("Trigger.Dispatch already notified",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingNotificationEventKey, string(event)),
		)
		return nil
	}

	notification := models.AppointmentNotification{
		ID:          uuid.NewString(),
		Event:       event,
		Appointment: appointment,
		RequestID:   requestID,
		EnqueuedAt:  claimedAt,
	}
	if err := t.Publisher.Publish(ctx, notification); err != nil {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.DispatchTimeout)
		defer cancel()
		if releaseErr := t.AppointmentRepository.ReleaseNotification(releaseCtx, appointment.ID, event); releaseErr != nil {
			t.Log.Error("Trigger.Dispatch error releasing notification marker",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(releaseErr),
			)
		}
		return exceptions.ErrNotificationDispatch(err, string(event))
	}

	t.Log.Info("Trigger.Dispatch succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingNotificationEventKey, string(event)),
	)
	return nil
}

// Wait blocks until every fired dispatch has finished.
func (t *Trigger) Wait() {
	t.wg.Wait()
}
