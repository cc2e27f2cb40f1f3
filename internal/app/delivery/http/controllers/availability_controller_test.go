package controllers

import (
	"booking-service/internal/app/config"
	"booking-service/internal/app/models"
	"booking-service/internal/app/services/core/slot"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/dto/responses"
	"booking-service/internal/pkg/exceptions"
	"booking-service/internal/pkg/testutils"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAvailabilityRouter(t *testing.T, usecase *testutils.AvailabilityUsecaseMock) *chi.Mux {
	t.Helper()
	catalog, err := slot.NewCatalog(config.DefaultBusinessCalendar(), time.UTC)
	require.NoError(t, err)

	ctrl := NewAvailabilityController(zap.NewNop(), usecase, catalog)
	router := chi.NewRouter()
	router.Get("/slots", ctrl.GetSlots)
	router.Get("/availability", ctrl.GetAvailability)
	router.Get("/availability/monthly", ctrl.GetMonthlyAvailability)
	router.Get("/availability/check", ctrl.CheckAvailability)
	router.Get("/availability/dates/{date}", ctrl.GetDateAvailability)
	return router
}

func TestAvailabilityController_GetMonthlyAvailability(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		usecase := new(testutils.AvailabilityUsecaseMock)
		usecase.On("GetMonthlyAvailability", mock.Anything, 2025, 3).Return(map[string]models.DateAvailability{
			"2025-03-10": {Date: "2025-03-10", Status: models.DateAvailabilityStatusOpen},
		}, nil)

		rr := httptest.NewRecorder()
		newAvailabilityRouter(t, usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/availability/monthly?year=2025&month=3", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"2025-03-10"`)
		usecase.AssertExpectations(t)
	})

	t.Run("non numeric month", func(t *testing.T) {
		usecase := new(testutils.AvailabilityUsecaseMock)

		rr := httptest.NewRecorder()
		newAvailabilityRouter(t, usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/availability/monthly?year=2025&month=march", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		usecase.AssertNotCalled(t, "GetMonthlyAvailability", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing year", func(t *testing.T) {
		usecase := new(testutils.AvailabilityUsecaseMock)

		rr := httptest.NewRecorder()
		newAvailabilityRouter(t, usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/availability/monthly?month=3", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("store outage", func(t *testing.T) {
		usecase := new(testutils.AvailabilityUsecaseMock)
		usecase.On("GetMonthlyAvailability", mock.Anything, 2025, 3).
			Return(nil, exceptions.ErrAvailabilityFetchFailed(errors.New("timeout"), "getMonthlyAvailability", "2025-03-01", "2025-03-31"))

		rr := httptest.NewRecorder()
		newAvailabilityRouter(t, usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/availability/monthly?year=2025&month=3", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, constvars.ErrCodeAvailabilityFetchFailed, decodeErrorBody(t, rr).Code)
	})
}

func TestAvailabilityController_GetAvailability(t *testing.T) {
	usecase := new(testutils.AvailabilityUsecaseMock)
	usecase.On("GetAvailability", mock.Anything, "2025-03-10", "2025-03-12").Return(map[string]models.DateAvailability{}, nil)
	router := newAvailabilityRouter(t, usecase)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/availability?start=2025-03-10&end=2025-03-12", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	missing := httptest.NewRecorder()
	router.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/availability?start=2025-03-10", nil))
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	usecase.AssertNumberOfCalls(t, "GetAvailability", 1)
}

func TestAvailabilityController_GetDateAvailability(t *testing.T) {
	usecase := new(testutils.AvailabilityUsecaseMock)
	usecase.On("GetDateAvailability", mock.Anything, "2025-03-15").Return(&models.DateAvailability{
		Date:      "2025-03-15",
		Status:    models.DateAvailabilityStatusClosed,
		Closed:    true,
		TimeSlots: []models.TimeSlotAvailability{},
	}, nil)

	rr := httptest.NewRecorder()
	newAvailabilityRouter(t, usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/availability/dates/2025-03-15", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"closed"`)
}

func TestAvailabilityController_CheckAvailability(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		usecase := new(testutils.AvailabilityUsecaseMock)
		usecase.On("CheckAvailability", mock.Anything, "2025-03-10", "10:00").
			Return(&models.SlotCheck{Date: "2025-03-10", Time: "10:00", Offered: true, Available: false, ConflictCount: 1}, nil)

		rr := httptest.NewRecorder()
		newAvailabilityRouter(t, usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/availability/check?date=2025-03-10&time=10:00", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"available":false`)
	})

	t.Run("duplicate active booking surfaces as a server fault", func(t *testing.T) {
		usecase := new(testutils.AvailabilityUsecaseMock)
		usecase.On("CheckAvailability", mock.Anything, "2025-03-10", "10:00").
			Return(nil, exceptions.ErrDuplicateActiveBooking("2025-03-10", "10:00", 2))

		rr := httptest.NewRecorder()
		newAvailabilityRouter(t, usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/availability/check?date=2025-03-10&time=10:00", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, constvars.ErrCodeDuplicateActiveBooking, decodeErrorBody(t, rr).Code)
	})
}

func TestAvailabilityController_GetSlots(t *testing.T) {
	router := newAvailabilityRouter(t, new(testutils.AvailabilityUsecaseMock))

	decode := func(rr *httptest.ResponseRecorder) responses.CatalogSlots {
		var envelope struct {
			Data responses.CatalogSlots `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		return envelope.Data
	}

	t.Run("open weekday", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/slots?date=2025-03-10", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		slots := decode(rr)
		assert.False(t, slots.Closed)
		require.NotEmpty(t, slots.Slots)
		assert.Equal(t, "09:30", slots.Slots[0])
		assert.Contains(t, slots.Slots, "15:00")
	})

	t.Run("closed weekend", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/slots?date=2025-03-15", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		slots := decode(rr)
		assert.True(t, slots.Closed)
		assert.Empty(t, slots.Slots)
	})

	t.Run("bad date", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/slots?date=10-03-2025", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
