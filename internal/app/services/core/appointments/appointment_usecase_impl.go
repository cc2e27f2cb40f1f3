package appointments

import (
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/dto/requests"
	"booking-service/internal/pkg/exceptions"
	"booking-service/internal/pkg/utils"
	"context"
	"time"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	AvailabilityUsecase   contracts.AvailabilityUsecase
	SlotCatalog           contracts.SlotCatalog
	NotificationTrigger   contracts.NotificationTrigger
	Now                   func() time.Time
	Log                   *zap.Logger
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	availabilityUsecase contracts.AvailabilityUsecase,
	slotCatalog contracts.SlotCatalog,
	notificationTrigger contracts.NotificationTrigger,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		AvailabilityUsecase:   availabilityUsecase,
		SlotCatalog:           slotCatalog,
		NotificationTrigger:   notificationTrigger,
		Now:                   time.Now,
		Log:                   logger,
	}
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentDateKey, request.Date),
		zap.String(constvars.LoggingAppointmentTimeKey, request.Time),
	)

	utils.SanitizeCreateAppointmentRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		uc.Log.Warn("appointmentUsecase.CreateAppointment validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	durationMinutes, ok := uc.SlotCatalog.ServiceDuration(request.ServiceKind)
	if !ok {
		return nil, exceptions.ErrServiceKindNotOffered(request.ServiceKind)
	}
	if request.ParticipantCount > uc.SlotCatalog.MaxParticipants() {
		return nil, exceptions.ErrTooManyParticipants(uc.SlotCatalog.MaxParticipants())
	}

	if err := uc.ensureBookable(request.Date, request.Time); err != nil {
		uc.Log.Warn("appointmentUsecase.CreateAppointment slot not offered",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	check, err := uc.AvailabilityUsecase.CheckAvailability(ctx, request.Date, request.Time)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error calling AvailabilityUsecase.CheckAvailability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !check.Available {
		return nil, uc.slotTaken(ctx, nil, request.Date, request.Time)
	}

	appointment := &models.Appointment{
		ID:               utils.GenerateAppointmentID(),
		Date:             request.Date,
		Time:             request.Time,
		Customer:         models.Customer(request.Customer),
		ServiceKind:      models.ServiceKind(request.ServiceKind),
		DurationMinutes:  durationMinutes,
		ParticipantCount: request.ParticipantCount,
		Notes:            request.Notes,
		Status:           models.AppointmentStatusPending,
		OwnerRef:         request.OwnerRef,
		SlotKey:          models.BuildSlotKey(request.Date, request.Time),
	}

	// Once the insert starts, a client disconnect must not abort it.
	writeCtx := context.WithoutCancel(ctx)
	if err := uc.AppointmentRepository.Insert(writeCtx, appointment); err != nil {
		if exceptions.HasCode(err, constvars.ErrCodeSlotTaken) {
			uc.Log.Info("appointmentUsecase.CreateAppointment lost the race for the slot",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentDateKey, request.Date),
				zap.String(constvars.LoggingAppointmentTimeKey, request.Time),
			)
			return nil, uc.slotTaken(writeCtx, err, request.Date, request.Time)
		}
		uc.Log.Error("appointmentUsecase.CreateAppointment error calling AppointmentRepository.Insert",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.AvailabilityUsecase.InvalidateDate(writeCtx, appointment.Date)
	uc.NotificationTrigger.Fire(writeCtx, models.NotificationEventCreated, *appointment)

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) SetAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.SetAppointmentStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, id),
		zap.String(constvars.LoggingAppointmentStatusKey, string(status)),
	)

	if _, ok := models.ParseAppointmentStatus(string(status)); !ok {
		return nil, exceptions.ErrUnknownStatus(string(status))
	}

	current, err := uc.FindAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == status && status == models.AppointmentStatusConfirmed {
		// A retried confirmation. The marker claim keeps the notification single.
		if current.ConfirmationNotifiedAt == nil {
			uc.NotificationTrigger.Fire(context.WithoutCancel(ctx), models.NotificationEventConfirmed, *current)
		}
		return current, nil
	}
	if !models.CanTransition(current.Status, status) {
		return nil, exceptions.ErrInvalidTransition(string(current.Status), string(status))
	}

	writeCtx := context.WithoutCancel(ctx)
	updated, err := uc.AppointmentRepository.UpdateStatus(writeCtx, id, current.Status, status, uc.Now().UTC())
	if err != nil {
		uc.Log.Error("appointmentUsecase.SetAppointmentStatus error calling AppointmentRepository.UpdateStatus",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if updated == nil {
		// Someone else moved the appointment since we read it.
		return uc.resolveLostUpdate(writeCtx, id, status)
	}

	uc.AvailabilityUsecase.InvalidateDate(writeCtx, updated.Date)
	if status == models.AppointmentStatusConfirmed {
		uc.NotificationTrigger.Fire(writeCtx, models.NotificationEventConfirmed, *updated)
	}

	uc.Log.Info("appointmentUsecase.SetAppointmentStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, id),
		zap.String(constvars.LoggingAppointmentStatusKey, string(updated.Status)),
	)
	return updated, nil
}

func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, id string, actor requests.Actor) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, id),
		zap.Bool("operator", actor.Operator),
	)

	current, err := uc.FindAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.Operator {
		if actor.OwnerRef == "" || current.OwnerRef == nil || *current.OwnerRef != actor.OwnerRef {
			uc.Log.Warn("appointmentUsecase.CancelAppointment rejected for non-owner",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, id),
				zap.String(constvars.LoggingOwnerRefKey, actor.OwnerRef),
			)
			return nil, exceptions.ErrNotAppointmentOwner(nil)
		}
	}

	return uc.SetAppointmentStatus(ctx, id, models.AppointmentStatusCancelled)
}

func (uc *appointmentUsecase) FindAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, id)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAppointmentByID error calling AppointmentRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, id),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(id)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) FindAppointmentsByOwner(ctx context.Context, ownerRef string) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindAppointmentsByOwner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOwnerRefKey, ownerRef),
	)

	appointments, err := uc.AppointmentRepository.FindByOwner(ctx, ownerRef)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAppointmentsByOwner error calling AppointmentRepository.FindByOwner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	uc.Log.Info("appointmentUsecase.FindAppointmentsByOwner succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(appointments)),
	)
	return appointments, nil
}

// ensureBookable rejects closed dates, times outside the catalog, and slots
// that have already started in the business timezone.
func (uc *appointmentUsecase) ensureBookable(date, clock string) error {
	day, err := uc.SlotCatalog.ParseDate(date)
	if err != nil {
		return exceptions.ErrInvalidField(err, "date", "date must use the YYYY-MM-DD format")
	}
	if uc.SlotCatalog.IsClosed(day) {
		return exceptions.ErrDateClosed(date)
	}
	if !uc.SlotCatalog.Offers(day, clock) {
		return exceptions.ErrSlotNotOffered(date, clock)
	}

	startsAt, err := time.ParseInLocation(constvars.DateLayout+" "+constvars.ClockLayout, date+" "+clock, uc.SlotCatalog.Location())
	if err != nil {
		return exceptions.ErrSlotNotOffered(date, clock)
	}
	if !startsAt.After(uc.Now()) {
		return exceptions.ErrDateInPast(date, clock)
	}
	return nil
}

// slotTaken builds the conflict error together with the refreshed
// availability of the date so the caller can pick another slot.
func (uc *appointmentUsecase) slotTaken(ctx context.Context, cause error, date, clock string) error {
	slotErr := exceptions.ErrSlotTaken(cause, date, clock)

	refreshed, err := uc.AvailabilityUsecase.GetDateAvailability(ctx, date)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("appointmentUsecase.slotTaken could not refresh availability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return slotErr
	}
	return slotErr.WithDetails(refreshed)
}

func (uc *appointmentUsecase) resolveLostUpdate(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	latest, err := uc.FindAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if latest.Status == status && status == models.AppointmentStatusConfirmed {
		return latest, nil
	}
	return nil, exceptions.ErrInvalidTransition(string(latest.Status), string(status))
}
