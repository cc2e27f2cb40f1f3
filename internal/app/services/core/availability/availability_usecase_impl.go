package availability

import (
	"booking-service/internal/app/config"
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/exceptions"
	"booking-service/internal/pkg/utils"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	operationMonthlyAvailability = "getMonthlyAvailability"
	operationRangeAvailability   = "getAvailability"
	operationDateAvailability    = "getDateAvailability"
	operationCheckAvailability   = "checkAvailability"
)

type availabilityUsecase struct {
	appointmentRepo contracts.AppointmentRepository
	catalog         contracts.SlotCatalog
	cache           contracts.AvailabilityCache
	cacheTTL        time.Duration
	maxRangeDays    int
	now             func() time.Time
	Log             *zap.Logger
}

// NewAvailabilityUsecase builds the read-side projection over stored
// appointments. cache may be nil, in which case every read goes to the store.
func NewAvailabilityUsecase(
	appointmentRepo contracts.AppointmentRepository,
	catalog contracts.SlotCatalog,
	cache contracts.AvailabilityCache,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AvailabilityUsecase {
	return newAvailabilityUsecase(appointmentRepo, catalog, cache, internalConfig, logger, time.Now)
}

func newAvailabilityUsecase(
	appointmentRepo contracts.AppointmentRepository,
	catalog contracts.SlotCatalog,
	cache contracts.AvailabilityCache,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
	now func() time.Time,
) *availabilityUsecase {
	maxRangeDays := internalConfig.Booking.MaxAvailabilityRangeDays
	if maxRangeDays <= 0 {
		maxRangeDays = constvars.DefaultMaxAvailabilityRangeDays
	}
	return &availabilityUsecase{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		cache:           cache,
		cacheTTL:        time.Duration(internalConfig.Booking.AvailabilityCacheTTLInSeconds) * time.Second,
		maxRangeDays:    maxRangeDays,
		now:             now,
		Log:             logger,
	}
}

func (uc *availabilityUsecase) GetMonthlyAvailability(ctx context.Context, year, month int) (map[string]models.DateAvailability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	monthKey := fmt.Sprintf("%04d-%02d", year, month)
	uc.Log.Info("availabilityUsecase.GetMonthlyAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMonthKey, monthKey),
	)

	first, last, err := utils.MonthBounds(year, month, uc.catalog.Location())
	if err != nil {
		return nil, exceptions.ErrInvalidField(err, "month", "year and month must form a valid calendar month")
	}

	today := startOfDay(uc.now(), uc.catalog.Location())
	version, cacheUsable := uc.cacheVersion(ctx, requestID, monthKey, first, last)
	if cacheUsable {
		cached, hit, err := uc.cache.Get(ctx, monthKey, version)
		if err != nil {
			uc.Log.Warn("availabilityUsecase.GetMonthlyAvailability error reading cache, bypassing",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingMonthKey, monthKey),
				zap.Error(err),
			)
		} else if hit {
			stampPast(cached, today)
			uc.Log.Info("availabilityUsecase.GetMonthlyAvailability succeeded",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Bool(constvars.LoggingCacheHitKey, true),
			)
			return cached, nil
		}
	}

	result, err := uc.project(ctx, operationMonthlyAvailability, first, last)
	if err != nil {
		return nil, err
	}

	if cacheUsable && uc.cacheTTL > 0 {
		if err := uc.cache.Set(ctx, monthKey, version, result, uc.cacheTTL); err != nil {
			uc.Log.Warn("availabilityUsecase.GetMonthlyAvailability error writing cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingMonthKey, monthKey),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("availabilityUsecase.GetMonthlyAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.LoggingCacheHitKey, false),
		zap.Int(constvars.LoggingCountKey, len(result)),
	)
	return result, nil
}

func (uc *availabilityUsecase) GetAvailability(ctx context.Context, startDate, endDate string) (map[string]models.DateAvailability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.GetAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStartDateKey, startDate),
		zap.String(constvars.LoggingEndDateKey, endDate),
	)

	start, err := uc.catalog.ParseDate(startDate)
	if err != nil {
		return nil, exceptions.ErrInvalidDateRange(err, startDate, endDate)
	}
	end, err := uc.catalog.ParseDate(endDate)
	if err != nil {
		return nil, exceptions.ErrInvalidDateRange(err, startDate, endDate)
	}
	if end.Before(start) {
		return nil, exceptions.ErrInvalidDateRange(fmt.Errorf("end date precedes start date"), startDate, endDate)
	}
	if days := utils.DaysInclusive(start, end); days > uc.maxRangeDays {
		return nil, exceptions.ErrInvalidDateRange(fmt.Errorf("range of %d days exceeds %d", days, uc.maxRangeDays), startDate, endDate)
	}

	result, err := uc.project(ctx, operationRangeAvailability, start, end)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("availabilityUsecase.GetAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result)),
	)
	return result, nil
}

func (uc *availabilityUsecase) GetDateAvailability(ctx context.Context, date string) (*models.DateAvailability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.GetDateAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentDateKey, date),
	)

	day, err := uc.catalog.ParseDate(date)
	if err != nil {
		return nil, exceptions.ErrInvalidField(err, "date", "date must use the YYYY-MM-DD format")
	}

	result, err := uc.project(ctx, operationDateAvailability, day, day)
	if err != nil {
		return nil, err
	}

	dateAvailability := result[date]
	return &dateAvailability, nil
}

func (uc *availabilityUsecase) CheckAvailability(ctx context.Context, date, clock string) (*models.SlotCheck, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.CheckAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentDateKey, date),
		zap.String(constvars.LoggingAppointmentTimeKey, clock),
	)

	day, err := uc.catalog.ParseDate(date)
	if err != nil {
		return nil, exceptions.ErrInvalidField(err, "date", "date must use the YYYY-MM-DD format")
	}

	check := &models.SlotCheck{
		Date:    date,
		Time:    clock,
		Offered: uc.catalog.Offers(day, clock),
		Closed:  uc.catalog.IsClosed(day),
	}
	if !check.Offered {
		return check, nil
	}

	active, err := uc.appointmentRepo.FindActiveBySlot(ctx, date, clock)
	if err != nil {
		uc.Log.Error("availabilityUsecase.CheckAvailability error calling appointmentRepo.FindActiveBySlot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrAvailabilityFetchFailed(err, operationCheckAvailability, date, date)
	}

	check.ConflictCount = len(active)
	if check.ConflictCount > 1 {
		ids := make([]string, 0, len(active))
		for _, a := range active {
			ids = append(ids, a.ID)
		}
		uc.Log.Error("availabilityUsecase.CheckAvailability detected duplicate active bookings",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentDateKey, date),
			zap.String(constvars.LoggingAppointmentTimeKey, clock),
			zap.Strings(constvars.LoggingAppointmentIDsKey, ids),
		)
		return nil, exceptions.ErrDuplicateActiveBooking(date, clock, check.ConflictCount).WithDetails(check)
	}
	check.Available = check.ConflictCount == 0

	uc.Log.Info("availabilityUsecase.CheckAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("available", check.Available),
	)
	return check, nil
}

func (uc *availabilityUsecase) InvalidateDate(ctx context.Context, date string) {
	if uc.cache == nil {
		return
	}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	month := utils.MonthOf(date)
	if err := uc.cache.Invalidate(ctx, month); err != nil {
		uc.Log.Error("availabilityUsecase.InvalidateDate error invalidating cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMonthKey, month),
			zap.Error(err),
		)
	}
}

// project reads every appointment in [start, end] with one range query and
// builds the per-date projection. Any store failure is reported as a
// transient fetch failure; the caller never sees a partial result.
func (uc *availabilityUsecase) project(ctx context.Context, operation string, start, end time.Time) (map[string]models.DateAvailability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	startDate := start.Format(constvars.DateLayout)
	endDate := end.Format(constvars.DateLayout)

	appointments, err := uc.appointmentRepo.FindByDateRange(ctx, startDate, endDate)
	if err != nil {
		uc.Log.Error("availabilityUsecase.project error calling appointmentRepo.FindByDateRange",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStartDateKey, startDate),
			zap.String(constvars.LoggingEndDateKey, endDate),
			zap.Error(err),
		)
		return nil, exceptions.ErrAvailabilityFetchFailed(err, operation, startDate, endDate)
	}

	occupied, stray := groupActive(uc.catalog, appointments)
	for _, a := range stray {
		uc.Log.Warn("availabilityUsecase.project ignoring appointment outside the slot catalog",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, a.ID),
			zap.String(constvars.LoggingAppointmentDateKey, a.Date),
			zap.String(constvars.LoggingAppointmentTimeKey, a.Time),
		)
	}
	for _, c := range occupied.conflicts() {
		uc.Log.Error("availabilityUsecase.project detected duplicate active bookings",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentDateKey, c.Date),
			zap.String(constvars.LoggingAppointmentTimeKey, c.Time),
			zap.Strings(constvars.LoggingAppointmentIDsKey, c.AppointmentIDs),
		)
	}

	loc := uc.catalog.Location()
	today := startOfDay(uc.now(), loc)
	result := make(map[string]models.DateAvailability)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(constvars.DateLayout)
		result[date] = buildDateAvailability(uc.catalog, day, today, occupied[date])
	}
	return result, nil
}

// cacheVersion names the snapshot of month that is valid right now: the
// cache generation plus the newest updatedAt stored in the month. Every write
// moves the watermark, so a lost generation bump costs a miss, never a stale
// hit. It returns false when the cache is disabled or either read fails.
func (uc *availabilityUsecase) cacheVersion(ctx context.Context, requestID, month string, first, last time.Time) (string, bool) {
	if uc.cache == nil {
		return "", false
	}
	generation, err := uc.cache.Generation(ctx, month)
	if err != nil {
		uc.Log.Warn("availabilityUsecase error reading cache generation, bypassing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMonthKey, month),
			zap.Error(err),
		)
		return "", false
	}

	watermark, err := uc.appointmentRepo.LatestUpdateInRange(ctx, first.Format(constvars.DateLayout), last.Format(constvars.DateLayout))
	if err != nil {
		uc.Log.Warn("availabilityUsecase error calling appointmentRepo.LatestUpdateInRange, bypassing cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMonthKey, month),
			zap.Error(err),
		)
		return "", false
	}
	return fmt.Sprintf("%s.%d", generation, watermark.UnixMilli()), true
}
