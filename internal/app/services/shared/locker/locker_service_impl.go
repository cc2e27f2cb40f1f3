package locker

import (
	"booking-service/internal/app/contracts"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type leaseLocker struct {
	redisRepo contracts.RedisRepository
	log       *zap.Logger
}

// NewLockService returns a Redis lease locker. Release and Extend only touch
// a key that still carries the caller's token.
func NewLockService(repo contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	return &leaseLocker{
		redisRepo: repo,
		log:       logger,
	}
}

func (l *leaseLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (*contracts.Lease, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	l.log.Debug("leaseLocker.Acquire called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, ttl),
	)

	lease := &contracts.Lease{Key: key, Token: uuid.NewString(), TTL: ttl}
	stored, err := l.redisRepo.TrySetNX(ctx, key, lease.Token, ttl)
	if err != nil {
		l.log.Error("leaseLocker.Acquire error storing lease",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil, err
	}
	if !stored {
		return nil, nil
	}

	l.log.Info("leaseLocker.Acquire lease taken",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, lease.Token),
	)
	return lease, nil
}

func (l *leaseLocker) Release(ctx context.Context, lease *contracts.Lease) error {
	if lease == nil {
		return nil
	}
	removed, err := l.redisRepo.CompareAndDelete(ctx, lease.Key, lease.Token)
	if err != nil {
		l.log.Error("leaseLocker.Release error deleting lease",
			zap.String(constvars.LoggingRedisKey, lease.Key),
			zap.Error(err),
		)
		return err
	}
	if !removed {
		// Expired or taken over. Either way nothing of ours is left.
		l.log.Warn("leaseLocker.Release lease already gone",
			zap.String(constvars.LoggingRedisKey, lease.Key),
			zap.String(constvars.LoggingLockValueKey, lease.Token),
		)
	}
	return nil
}

func (l *leaseLocker) Extend(ctx context.Context, lease *contracts.Lease) error {
	if lease == nil {
		return exceptions.ErrRedisUnlock(fmt.Errorf("nil lease"))
	}
	extended, err := l.redisRepo.CompareAndExpire(ctx, lease.Key, lease.Token, lease.TTL)
	if err != nil {
		return err
	}
	if !extended {
		err := exceptions.ErrRedisUnlock(fmt.Errorf("lease on %s is no longer held", lease.Key))
		l.log.Warn("leaseLocker.Extend lease lost",
			zap.String(constvars.LoggingRedisKey, lease.Key),
			zap.Error(err),
		)
		return err
	}
	return nil
}
