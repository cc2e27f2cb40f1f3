package controllers

import (
	"booking-service/internal/app/contracts"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/dto/responses"
	"booking-service/internal/pkg/exceptions"
	"booking-service/internal/pkg/utils"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
	SlotCatalog         contracts.SlotCatalog
}

func NewAvailabilityController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase, slotCatalog contracts.SlotCatalog) *AvailabilityController {
	return &AvailabilityController{
		Log:                 logger,
		AvailabilityUsecase: availabilityUsecase,
		SlotCatalog:         slotCatalog,
	}
}

func (ctrl *AvailabilityController) GetMonthlyAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AvailabilityController.GetMonthlyAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, r.URL.RawQuery))

	year, err := queryInt(r, constvars.URLQueryYear)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	month, err := queryInt(r, constvars.URLQueryMonth)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	availability, err := ctrl.AvailabilityUsecase.GetMonthlyAvailability(ctx, year, month)
	if err != nil {
		ctrl.Log.Error("AvailabilityController.GetMonthlyAvailability error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, mapContextError(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetMonthlyAvailabilitySuccessMessage, availability)
}

func (ctrl *AvailabilityController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AvailabilityController.GetAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, r.URL.RawQuery))

	startDate, err := queryString(r, constvars.URLQueryStartDate)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	endDate, err := queryString(r, constvars.URLQueryEndDate)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	availability, err := ctrl.AvailabilityUsecase.GetAvailability(ctx, startDate, endDate)
	if err != nil {
		ctrl.Log.Error("AvailabilityController.GetAvailability error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, mapContextError(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailabilitySuccessMessage, availability)
}

func (ctrl *AvailabilityController) GetDateAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	date := chi.URLParam(r, constvars.URLParamDate)
	ctrl.Log.Info("AvailabilityController.GetDateAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentDateKey, date))

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	availability, err := ctrl.AvailabilityUsecase.GetDateAvailability(ctx, date)
	if err != nil {
		ctrl.Log.Error("AvailabilityController.GetDateAvailability error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, mapContextError(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDateAvailabilitySuccessMessage, availability)
}

func (ctrl *AvailabilityController) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AvailabilityController.CheckAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, r.URL.RawQuery))

	date, err := queryString(r, constvars.URLQueryDate)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	clock, err := queryString(r, constvars.URLQueryTime)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	check, err := ctrl.AvailabilityUsecase.CheckAvailability(ctx, date, clock)
	if err != nil {
		ctrl.Log.Error("AvailabilityController.CheckAvailability error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, mapContextError(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CheckAvailabilitySuccessMessage, check)
}

// GetSlots lists the catalog slots of a date without looking at bookings.
func (ctrl *AvailabilityController) GetSlots(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AvailabilityController.GetSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, r.URL.RawQuery))

	date, err := queryString(r, constvars.URLQueryDate)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	day, err := ctrl.SlotCatalog.ParseDate(date)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(err, constvars.URLQueryDate))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSlotsSuccessMessage, responses.CatalogSlots{
		Date:   date,
		Closed: ctrl.SlotCatalog.IsClosed(day),
		Slots:  ctrl.SlotCatalog.SlotsFor(day),
	})
}
