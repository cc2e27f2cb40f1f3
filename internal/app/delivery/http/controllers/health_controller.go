package controllers

import (
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/dto/responses"
	"booking-service/internal/pkg/exceptions"
	"booking-service/internal/pkg/utils"
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthCheckFunc reports whether one backing service answers.
type HealthCheckFunc func(ctx context.Context) error

type HealthController struct {
	Log     *zap.Logger
	Version string
	Checks  map[string]HealthCheckFunc
}

func NewHealthController(logger *zap.Logger, version string, checks map[string]HealthCheckFunc) *HealthController {
	return &HealthController{
		Log:     logger,
		Version: version,
		Checks:  checks,
	}
}

func (ctrl *HealthController) CheckHealth(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	for name, check := range ctrl.Checks {
		if err := check(ctx); err != nil {
			ctrl.Log.Error("HealthController.CheckHealth dependency unhealthy",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("dependency", name),
				zap.Error(err))
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.BuildNewCustomError(
				err,
				constvars.StatusServiceUnavailable,
				constvars.ErrClientSomethingWrongWithApplication,
				fmt.Sprintf("%s is unreachable", name),
			).WithCode(constvars.ErrCodeInternal).AsRetryable())
			return
		}
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, responses.HealthCheck{
		Status:  constvars.ResponseSuccess,
		Version: ctrl.Version,
	})
}
