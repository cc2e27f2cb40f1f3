package controllers

import (
	"booking-service/internal/app/config"
	"booking-service/internal/app/models"
	"booking-service/internal/app/services/shared/ratelimiter"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/dto/requests"
	"booking-service/internal/pkg/exceptions"
	"booking-service/internal/pkg/testutils"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAppointmentID = "3f1c7a52-9d0e-4b7a-8a51-2b1f6c0d9e11"

const createBody = `{
	"date": "2025-03-10",
	"time": "10:00",
	"customer": {"name": "Ana Ruiz", "email": "ana@example.com", "phone": "+34 600 000 000"},
	"serviceKind": "express",
	"participantCount": 1
}`

func newAppointmentRouter(usecase *testutils.AppointmentUsecaseMock, redisRepo *testutils.RedisRepositoryMock) *chi.Mux {
	internalConfig := &config.InternalConfig{Booking: config.AppBooking{
		CreateAttemptsPerWindow:      5,
		CreateAttemptWindowInSeconds: 600,
	}}

	var limiter *ratelimiter.ResourceLimiter
	if redisRepo != nil {
		limiter = ratelimiter.NewResourceLimiter(redisRepo, zap.NewNop())
	}
	ctrl := NewAppointmentController(zap.NewNop(), usecase, limiter, internalConfig)

	router := chi.NewRouter()
	router.Post("/appointments", ctrl.CreateAppointment)
	router.Get("/appointments/mine", ctrl.FindMyAppointments)
	router.Get("/appointments/{appointment_id}", ctrl.FindAppointmentByID)
	router.Patch("/appointments/{appointment_id}/status", ctrl.UpdateAppointmentStatus)
	router.Post("/appointments/{appointment_id}/cancel", ctrl.CancelAppointment)
	return router
}

func decodeErrorBody(t *testing.T, rr *httptest.ResponseRecorder) exceptions.CustomError {
	t.Helper()
	var body exceptions.CustomError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestAppointmentController_CreateAppointment(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)
		usecase.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(req *requests.CreateAppointment) bool {
			return req.Date == "2025-03-10" && req.Time == "10:00" && req.OwnerRef == nil
		})).Return(&models.Appointment{ID: testAppointmentID, Status: models.AppointmentStatusPending}, nil)

		rr := httptest.NewRecorder()
		newAppointmentRouter(usecase, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(createBody)))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), testAppointmentID)
		assert.Contains(t, rr.Body.String(), constvars.CreateAppointmentSuccessMessage)
		usecase.AssertExpectations(t)
	})

	t.Run("owner reference comes from the token", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)
		usecase.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(req *requests.CreateAppointment) bool {
			return req.OwnerRef != nil && *req.OwnerRef == "user-7"
		})).Return(&models.Appointment{ID: testAppointmentID}, nil)

		req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(createBody))
		req = req.WithContext(context.WithValue(req.Context(), constvars.CONTEXT_OWNER_REF_KEY, "user-7"))

		rr := httptest.NewRecorder()
		newAppointmentRouter(usecase, nil).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)

		rr := httptest.NewRecorder()
		newAppointmentRouter(usecase, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(`{"date":`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		usecase.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
	})

	t.Run("taken slot maps to conflict", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)
		usecase.On("CreateAppointment", mock.Anything, mock.Anything).
			Return(nil, exceptions.ErrSlotTaken(nil, "2025-03-10", "10:00"))

		rr := httptest.NewRecorder()
		newAppointmentRouter(usecase, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(createBody)))

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, constvars.ErrCodeSlotTaken, decodeErrorBody(t, rr).Code)
	})

	t.Run("quota exceeded", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)
		redisRepo := new(testutils.RedisRepositoryMock)
		redisRepo.On("Increment", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "BOOKING-CREATE:ana@example.com:")
		})).Return(int64(6), nil)

		rr := httptest.NewRecorder()
		newAppointmentRouter(usecase, redisRepo).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(createBody)))

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, constvars.ErrCodeRateLimited, decodeErrorBody(t, rr).Code)
		usecase.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
	})

	t.Run("limiter outage lets the booking through", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)
		usecase.On("CreateAppointment", mock.Anything, mock.Anything).Return(&models.Appointment{ID: testAppointmentID}, nil)
		redisRepo := new(testutils.RedisRepositoryMock)
		redisRepo.On("Increment", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection refused"))

		rr := httptest.NewRecorder()
		newAppointmentRouter(usecase, redisRepo).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(createBody)))

		assert.Equal(t, http.StatusCreated, rr.Code)
	})
}

func TestAppointmentController_FindAppointmentByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)
		usecase.On("FindAppointmentByID", mock.Anything, testAppointmentID).Return(&models.Appointment{ID: testAppointmentID}, nil)

		rr := httptest.NewRecorder()
		newAppointmentRouter(usecase, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/appointments/"+testAppointmentID, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)

		rr := httptest.NewRecorder()
		newAppointmentRouter(usecase, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/appointments/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)
		usecase.On("FindAppointmentByID", mock.Anything, testAppointmentID).Return(nil, exceptions.ErrAppointmentNotFound(testAppointmentID))

		rr := httptest.NewRecorder()
		newAppointmentRouter(usecase, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/appointments/"+testAppointmentID, nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAppointmentController_FindMyAppointments(t *testing.T) {
	usecase := new(testutils.AppointmentUsecaseMock)
	usecase.On("FindAppointmentsByOwner", mock.Anything, "user-7").Return([]models.Appointment{{ID: testAppointmentID}}, nil)
	router := newAppointmentRouter(usecase, nil)

	req := httptest.NewRequest(http.MethodGet, "/appointments/mine", nil)
	req = req.WithContext(context.WithValue(req.Context(), constvars.CONTEXT_OWNER_REF_KEY, "user-7"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), testAppointmentID)

	anonymous := httptest.NewRecorder()
	router.ServeHTTP(anonymous, httptest.NewRequest(http.MethodGet, "/appointments/mine", nil))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)
}

func TestAppointmentController_UpdateAppointmentStatus(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)
		usecase.On("SetAppointmentStatus", mock.Anything, testAppointmentID, models.AppointmentStatusConfirmed).
			Return(&models.Appointment{ID: testAppointmentID, Status: models.AppointmentStatusConfirmed}, nil)

		rr := httptest.NewRecorder()
		body := strings.NewReader(`{"status":" Confirmed "}`)
		newAppointmentRouter(usecase, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/appointments/"+testAppointmentID+"/status", body))

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("invalid transition", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)
		usecase.On("SetAppointmentStatus", mock.Anything, testAppointmentID, models.AppointmentStatusPending).
			Return(nil, exceptions.ErrInvalidTransition("confirmed", "pending"))

		rr := httptest.NewRecorder()
		body := strings.NewReader(`{"status":"pending"}`)
		newAppointmentRouter(usecase, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/appointments/"+testAppointmentID+"/status", body))

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, constvars.ErrCodeInvalidTransition, decodeErrorBody(t, rr).Code)
	})
}

func TestAppointmentController_CancelAppointment(t *testing.T) {
	t.Run("operator", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)
		usecase.On("CancelAppointment", mock.Anything, testAppointmentID, requests.Actor{Operator: true}).
			Return(&models.Appointment{ID: testAppointmentID, Status: models.AppointmentStatusCancelled}, nil)

		req := httptest.NewRequest(http.MethodPost, "/appointments/"+testAppointmentID+"/cancel", nil)
		req = req.WithContext(context.WithValue(req.Context(), constvars.CONTEXT_OPERATOR_KEY, true))
		rr := httptest.NewRecorder()
		newAppointmentRouter(usecase, nil).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("owner", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)
		usecase.On("CancelAppointment", mock.Anything, testAppointmentID, requests.Actor{OwnerRef: "user-7"}).
			Return(&models.Appointment{ID: testAppointmentID, Status: models.AppointmentStatusCancelled}, nil)

		req := httptest.NewRequest(http.MethodPost, "/appointments/"+testAppointmentID+"/cancel", nil)
		req = req.WithContext(context.WithValue(req.Context(), constvars.CONTEXT_OWNER_REF_KEY, "user-7"))
		rr := httptest.NewRecorder()
		newAppointmentRouter(usecase, nil).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		usecase := new(testutils.AppointmentUsecaseMock)

		rr := httptest.NewRecorder()
		newAppointmentRouter(usecase, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/appointments/"+testAppointmentID+"/cancel", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		usecase.AssertNotCalled(t, "CancelAppointment", mock.Anything, mock.Anything, mock.Anything)
	})
}
