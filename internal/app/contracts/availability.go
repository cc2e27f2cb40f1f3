package contracts

import (
	"booking-service/internal/app/models"
	"context"
	"time"
)

type AvailabilityUsecase interface {
	GetMonthlyAvailability(ctx context.Context, year, month int) (map[string]models.DateAvailability, error)
	GetAvailability(ctx context.Context, startDate, endDate string) (map[string]models.DateAvailability, error)
	GetDateAvailability(ctx context.Context, date string) (*models.DateAvailability, error)
	CheckAvailability(ctx context.Context, date, clock string) (*models.SlotCheck, error)
	// InvalidateDate drops cached projections covering date after a write.
	InvalidateDate(ctx context.Context, date string)
}

// AvailabilityCache stores monthly projections under a version. Callers build
// the version from Generation, which every write bumps through Invalidate, and
// from a watermark of the store itself.
type AvailabilityCache interface {
	Generation(ctx context.Context, month string) (string, error)
	Get(ctx context.Context, month, version string) (map[string]models.DateAvailability, bool, error)
	Set(ctx context.Context, month, version string, availability map[string]models.DateAvailability, ttl time.Duration) error
	Invalidate(ctx context.Context, month string) error
}
