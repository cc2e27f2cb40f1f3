package availability

import (
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

type redisAvailabilityCache struct {
	redisRepo contracts.RedisRepository
}

// NewRedisAvailabilityCache stores monthly projections in redis. Each month
// has a generation counter and entries are keyed by a version derived from
// it, so bumping the counter orphans every projection computed earlier and
// lets it expire on its own.
func NewRedisAvailabilityCache(redisRepo contracts.RedisRepository) contracts.AvailabilityCache {
	return &redisAvailabilityCache{redisRepo: redisRepo}
}

func (c *redisAvailabilityCache) Generation(ctx context.Context, month string) (string, error) {
	value, err := c.redisRepo.Get(ctx, fmt.Sprintf(constvars.RedisKeyAvailabilityGenerationFormat, month))
	if err != nil {
		return "", err
	}
	if value == "" {
		return "0", nil
	}
	return value, nil
}

func (c *redisAvailabilityCache) Get(ctx context.Context, month, version string) (map[string]models.DateAvailability, bool, error) {
	raw, err := c.redisRepo.Get(ctx, fmt.Sprintf(constvars.RedisKeyAvailabilityMonthFormat, month, version))
	if err != nil {
		return nil, false, err
	}
	if raw == "" {
		return nil, false, nil
	}

	var availability map[string]models.DateAvailability
	if err := json.Unmarshal([]byte(raw), &availability); err != nil {
		return nil, false, exceptions.ErrCannotParseJSON(err)
	}
	return availability, true, nil
}

func (c *redisAvailabilityCache) Set(ctx context.Context, month, version string, availability map[string]models.DateAvailability, ttl time.Duration) error {
	return c.redisRepo.Set(ctx, fmt.Sprintf(constvars.RedisKeyAvailabilityMonthFormat, month, version), availability, ttl)
}

func (c *redisAvailabilityCache) Invalidate(ctx context.Context, month string) error {
	_, err := c.redisRepo.Increment(ctx, fmt.Sprintf(constvars.RedisKeyAvailabilityGenerationFormat, month))
	return err
}
