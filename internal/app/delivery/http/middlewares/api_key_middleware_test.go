package middlewares

import (
	"booking-service/internal/app/config"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testOperatorKey = "test-operator-api-key-12345"

func newOperatorMiddlewares(t *testing.T) *Middlewares {
	t.Helper()
	hash, err := utils.HashOperatorKey(testOperatorKey)
	require.NoError(t, err)

	return NewMiddlewares(zap.NewNop(), nil, &config.InternalConfig{
		App: config.App{OperatorAPIKeyHash: hash},
	})
}

func operatorProbe(seen *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = utils.IsOperator(r.Context())
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})
}

func TestRequireOperatorAPIKey(t *testing.T) {
	middlewares := newOperatorMiddlewares(t)

	t.Run("Valid API Key", func(t *testing.T) {
		var operator bool
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/abc/status", nil)
		req.Header.Set(constvars.HeaderAPIKey, testOperatorKey)

		rr := httptest.NewRecorder()
		middlewares.RequireOperatorAPIKey(operatorProbe(&operator)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "success", rr.Body.String())
		assert.True(t, operator)
	})

	t.Run("Missing API Key", func(t *testing.T) {
		var operator bool
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/abc/status", nil)

		rr := httptest.NewRecorder()
		middlewares.RequireOperatorAPIKey(operatorProbe(&operator)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), constvars.ErrCodeUnauthorized)
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		var operator bool
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/abc/status", nil)
		req.Header.Set(constvars.HeaderAPIKey, "invalid-api-key")

		rr := httptest.NewRecorder()
		middlewares.RequireOperatorAPIKey(operatorProbe(&operator)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, operator)
	})

	t.Run("Case Sensitivity", func(t *testing.T) {
		var operator bool
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/abc/status", nil)
		req.Header.Set(constvars.HeaderAPIKey, "TEST-OPERATOR-API-KEY-12345")

		rr := httptest.NewRecorder()
		middlewares.RequireOperatorAPIKey(operatorProbe(&operator)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("No hash configured", func(t *testing.T) {
		var operator bool
		unconfigured := NewMiddlewares(zap.NewNop(), nil, &config.InternalConfig{})
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/abc/status", nil)
		req.Header.Set(constvars.HeaderAPIKey, testOperatorKey)

		rr := httptest.NewRecorder()
		unconfigured.RequireOperatorAPIKey(operatorProbe(&operator)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestOperatorAPIKeyAuth_Optional(t *testing.T) {
	middlewares := newOperatorMiddlewares(t)

	t.Run("No API Key - Should Pass", func(t *testing.T) {
		var operator bool
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/abc/cancel", nil)

		rr := httptest.NewRecorder()
		middlewares.OperatorAPIKeyAuth(operatorProbe(&operator)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, operator)
	})

	t.Run("Valid API Key - Should Pass", func(t *testing.T) {
		var operator bool
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/abc/cancel", nil)
		req.Header.Set(constvars.HeaderAPIKey, testOperatorKey)

		rr := httptest.NewRecorder()
		middlewares.OperatorAPIKeyAuth(operatorProbe(&operator)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, operator)
	})

	t.Run("Invalid API Key - Should Fail", func(t *testing.T) {
		var operator bool
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/abc/cancel", nil)
		req.Header.Set(constvars.HeaderAPIKey, "wrong")

		rr := httptest.NewRecorder()
		middlewares.OperatorAPIKeyAuth(operatorProbe(&operator)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestOperatorAPIKey_Chained(t *testing.T) {
	middlewares := newOperatorMiddlewares(t)

	var operator bool
	handler := middlewares.OperatorAPIKeyAuth(middlewares.RequireOperatorAPIKey(operatorProbe(&operator)))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/abc/status", nil)
	req.Header.Set(constvars.HeaderAPIKey, testOperatorKey)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, operator)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/abc/status", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
