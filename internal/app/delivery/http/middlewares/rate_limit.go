package middlewares

import (
	"booking-service/internal/pkg/constvars"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// ConditionalRateLimit gives operator requests their own, larger budget.
func (m *Middlewares) ConditionalRateLimit(normalLimiter, operatorLimiter func(next http.Handler) http.Handler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		normal := normalLimiter(next)
		operator := operatorLimiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isOperator, ok := r.Context().Value(constvars.CONTEXT_OPERATOR_KEY).(bool); ok && isOperator {
				operator.ServeHTTP(w, r)
				return
			}
			normal.ServeHTTP(w, r)
		})
	}
}

// CreateRateLimiters creates the per-IP limiters for public and operator requests.
func (m *Middlewares) CreateRateLimiters() (normalLimiter, operatorLimiter func(next http.Handler) http.Handler) {
	normalLimiter = httprate.LimitByIP(m.InternalConfig.App.MaxRequests, time.Second)
	operatorLimiter = httprate.LimitByIP(m.InternalConfig.App.OperatorMaxRequests, time.Second)
	return normalLimiter, operatorLimiter
}
