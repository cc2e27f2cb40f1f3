package notifications

import (
	"booking-service/internal/app/config"
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeQueue struct {
	mu         sync.Mutex
	pending    []contracts.QueuedNotification
	acked      []uint64
	requeued   []models.AppointmentNotification
	deadLetter []models.AppointmentNotification
}

func (q *fakeQueue) Publish(ctx context.Context, notification models.AppointmentNotification) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, contracts.QueuedNotification{DeliveryTag: uint64(len(q.pending) + 1), Notification: notification})
	return nil
}

func (q *fakeQueue) FetchN(ctx context.Context, max int) ([]contracts.QueuedNotification, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if max > len(q.pending) {
		max = len(q.pending)
	}
	out := q.pending[:max]
	q.pending = q.pending[max:]
	return out, nil
}

func (q *fakeQueue) Ack(ctx context.Context, deliveryTag uint64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.acked = append(q.acked, deliveryTag)
	return nil
}

func (q *fakeQueue) Reenqueue(ctx context.Context, notification models.AppointmentNotification) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.requeued = append(q.requeued, notification)
	return nil
}

func (q *fakeQueue) EnqueueToDeadQueue(ctx context.Context, notification models.AppointmentNotification) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deadLetter = append(q.deadLetter, notification)
	return nil
}

type fakeMailer struct {
	err  error
	sent []models.AppointmentNotification
}

func (m *fakeMailer) SendAppointmentNotification(ctx context.Context, notification models.AppointmentNotification) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, notification)
	return nil
}

func queued(tag uint64, failedCount int) contracts.QueuedNotification {
	return contracts.QueuedNotification{
		DeliveryTag: tag,
		Notification: models.AppointmentNotification{
			ID:          "n1",
			Event:       models.NotificationEventCreated,
			Appointment: models.Appointment{ID: "a1"},
			FailedCount: failedCount,
		},
	}
}

func TestDeliveryWorker_RunOnce(t *testing.T) {
	ctx := context.Background()
	cfg := &config.InternalConfig{Notification: config.AppNotification{MaxDeliveryAttempts: 3, DeliveryBatchSize: 5}}

	t.Run("Delivered messages are acked", func(t *testing.T) {
		queue := &fakeQueue{pending: []contracts.QueuedNotification{queued(1, 0), queued(2, 0)}}
		mailer := &fakeMailer{}

		NewDeliveryWorker(zap.NewNop(), cfg, queue, mailer).RunOnce(ctx)

		assert.Len(t, mailer.sent, 2)
		assert.Equal(t, []uint64{1, 2}, queue.acked)
		assert.Empty(t, queue.requeued)
	})

	t.Run("Failed send is requeued with a higher failure count", func(t *testing.T) {
		queue := &fakeQueue{pending: []contracts.QueuedNotification{queued(7, 0)}}
		mailer := &fakeMailer{err: errors.New("smtp 421")}

		NewDeliveryWorker(zap.NewNop(), cfg, queue, mailer).RunOnce(ctx)

		require.Len(t, queue.requeued, 1)
		assert.Equal(t, 1, queue.requeued[0].FailedCount)
		assert.Equal(t, []uint64{7}, queue.acked)
		assert.Empty(t, queue.deadLetter)
	})

	t.Run("Last attempt goes to the dead-letter queue", func(t *testing.T) {
		queue := &fakeQueue{pending: []contracts.QueuedNotification{queued(9, 2)}}
		mailer := &fakeMailer{err: errors.New("mailbox unavailable")}

		NewDeliveryWorker(zap.NewNop(), cfg, queue, mailer).RunOnce(ctx)

		require.Len(t, queue.deadLetter, 1)
		assert.Equal(t, 3, queue.deadLetter[0].FailedCount)
		assert.Empty(t, queue.requeued)
		assert.Equal(t, []uint64{9}, queue.acked)
	})
}

func TestDeliveryWorker_StopWithoutStart(t *testing.T) {
	worker := NewDeliveryWorker(zap.NewNop(), &config.InternalConfig{}, &fakeQueue{}, &fakeMailer{})
	worker.Stop()
	worker.Stop()
}
