package middlewares

import (
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/exceptions"
	"booking-service/internal/pkg/utils"
	"context"
	"net/http"

	"go.uber.org/zap"
)

// OperatorAPIKeyAuth marks requests that carry a valid operator key. Requests
// without a key pass through untouched; a wrong key is rejected.
func (m *Middlewares) OperatorAPIKeyAuth(next http.Handler) http.Handler {
	return m.operatorKeyHandler(next, false)
}

// RequireOperatorAPIKey only lets requests with a valid operator key through.
func (m *Middlewares) RequireOperatorAPIKey(next http.Handler) http.Handler {
	return m.operatorKeyHandler(next, true)
}

func (m *Middlewares) operatorKeyHandler(next http.Handler, required bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if utils.IsOperator(r.Context()) {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get(constvars.HeaderAPIKey)
		if apiKey == "" {
			if required {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrAPIKeyRequired(nil))
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		fields := []zap.Field{
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
		}
		if !utils.OperatorKeyMatches(apiKey, m.InternalConfig.App.OperatorAPIKeyHash) {
			m.Log.Warn("Operator API key rejected", fields...)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		m.Log.Debug("Operator API key accepted", fields...)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), constvars.CONTEXT_OPERATOR_KEY, true)))
	})
}
