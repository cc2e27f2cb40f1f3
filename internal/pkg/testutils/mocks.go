package testutils

import (
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/dto/requests"
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

type RedisRepositoryMock struct {
	mock.Mock
}

func (m *RedisRepositoryMock) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *RedisRepositoryMock) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *RedisRepositoryMock) Increment(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RedisRepositoryMock) Expire(ctx context.Context, key string, exp time.Duration) error {
	args := m.Called(ctx, key, exp)
	return args.Error(0)
}

func (m *RedisRepositoryMock) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *RedisRepositoryMock) CompareAndDelete(ctx context.Context, key string, value interface{}) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func (m *RedisRepositoryMock) CompareAndExpire(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *RedisRepositoryMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MailerServiceMock struct {
	mock.Mock
}

func (m *MailerServiceMock) SendEmail(ctx context.Context, payload *requests.EmailPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// RecordingPublisher keeps every published notification in memory.
type RecordingPublisher struct {
	mu        sync.Mutex
	published []models.AppointmentNotification
	// Err, when set, fails every publish.
	Err error
}

func (p *RecordingPublisher) Publish(ctx context.Context, notification models.AppointmentNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.published = append(p.published, notification)
	return nil
}

func (p *RecordingPublisher) Published() []models.AppointmentNotification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.AppointmentNotification, len(p.published))
	copy(out, p.published)
	return out
}

func (p *RecordingPublisher) CountFor(appointmentID string, event models.NotificationEvent) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, n := range p.published {
		if n.Appointment.ID == appointmentID && n.Event == event {
			count++
		}
	}
	return count
}

func (p *RecordingPublisher) SetErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Err = err
}

type LockerServiceMock struct {
	mock.Mock
}

func (m *LockerServiceMock) Acquire(ctx context.Context, key string, ttl time.Duration) (*contracts.Lease, error) {
	args := m.Called(ctx, key, ttl)
	lease, _ := args.Get(0).(*contracts.Lease)
	return lease, args.Error(1)
}

func (m *LockerServiceMock) Release(ctx context.Context, lease *contracts.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *LockerServiceMock) Extend(ctx context.Context, lease *contracts.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}
