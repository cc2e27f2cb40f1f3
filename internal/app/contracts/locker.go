package contracts

import (
	"context"
	"time"
)

// Lease is a held distributed lock. Token is unique per acquisition.
type Lease struct {
	Key   string
	Token string
	TTL   time.Duration
}

type LockerService interface {
	// Acquire returns a nil lease without error when another holder owns key.
	Acquire(ctx context.Context, key string, ttl time.Duration) (*Lease, error)
	Release(ctx context.Context, lease *Lease) error
	// Extend pushes the expiry of a lease forward by its TTL.
	Extend(ctx context.Context, lease *Lease) error
}
