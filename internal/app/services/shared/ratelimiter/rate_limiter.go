package ratelimiter

import (
	"booking-service/internal/app/contracts"
	"booking-service/internal/pkg/constvars"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Quota is a fixed-window allowance shared by every resource in Group.
type Quota struct {
	Group  string
	Window time.Duration
	Limit  int
}

// Decision is the outcome of one Take.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// ResourceLimiter counts requests per resource in Redis. Counters expire one
// second after their window closes.
type ResourceLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewResourceLimiter(redis contracts.RedisRepository, log *zap.Logger) *ResourceLimiter {
	return &ResourceLimiter{redis: redis, log: log, now: time.Now}
}

// Key returns the counter key for resource in the window containing at.
func (q Quota) Key(resource string, at time.Time) string {
	return fmt.Sprintf("%s:%s:%d",
		strings.ToUpper(strings.TrimSpace(q.Group)),
		strings.ToLower(strings.TrimSpace(resource)),
		at.Unix()/int64(q.window().Seconds()),
	)
}

func (q Quota) window() time.Duration {
	if q.Window < time.Second {
		return time.Minute
	}
	return q.Window.Truncate(time.Second)
}

// Take spends one unit of quota for resource. A non-positive limit disables
// the quota. A blank resource is always refused.
func (l *ResourceLimiter) Take(ctx context.Context, quota Quota, resource string) (Decision, error) {
	if quota.Limit <= 0 {
		return Decision{Allowed: true}, nil
	}
	window := quota.window()
	if strings.TrimSpace(resource) == "" || strings.TrimSpace(quota.Group) == "" {
		return Decision{RetryAfter: window}, nil
	}

	now := l.now().UTC()
	key := quota.Key(resource, now)
	count, err := l.redis.Increment(ctx, key)
	if err != nil {
		l.log.Error("ResourceLimiter.Take increment failed",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err))
		return Decision{}, err
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, window+time.Second); err != nil {
			l.log.Warn("ResourceLimiter.Take expire failed",
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err))
		}
	}

	if count > int64(quota.Limit) {
		windowEnd := time.Unix((now.Unix()/int64(window.Seconds())+1)*int64(window.Seconds()), 0)
		return Decision{RetryAfter: windowEnd.Sub(now) + time.Second}, nil
	}
	return Decision{Allowed: true, Remaining: quota.Limit - int(count)}, nil
}
