package notificationqueue

import (
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/constvars"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	queue string
	body  []byte
}

// fakeChannel confirms every publish through the confirms channel it shares
// with the service.
type fakeChannel struct {
	confirms   chan amqp.Confirmation
	nack       bool
	publishErr error
	published  []published
	deliveries map[string][]amqp.Delivery
	acked      []uint64
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{queue: key, body: msg.Body})
	f.confirms <- amqp.Confirmation{DeliveryTag: uint64(len(f.published)), Ack: !f.nack}
	return nil
}

func (f *fakeChannel) Get(queue string, autoAck bool) (amqp.Delivery, bool, error) {
	pending := f.deliveries[queue]
	if len(pending) == 0 {
		return amqp.Delivery{}, false, nil
	}
	f.deliveries[queue] = pending[1:]
	return pending[0], true, nil
}

func (f *fakeChannel) Ack(tag uint64, multiple bool) error {
	f.acked = append(f.acked, tag)
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func newTestService() (*Service, *fakeChannel) {
	confirms := make(chan amqp.Confirmation, 1)
	ch := &fakeChannel{confirms: confirms, deliveries: make(map[string][]amqp.Delivery)}
	return &Service{ch: ch, log: zap.NewNop(), confirms: confirms}, ch
}

func sampleNotification() models.AppointmentNotification {
	return models.AppointmentNotification{
		ID:          "n1",
		Event:       models.NotificationEventCreated,
		Appointment: models.Appointment{ID: "a1", Date: "2025-03-12", Time: "10:00"},
		EnqueuedAt:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestService_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("Confirmed publish", func(t *testing.T) {
		svc, ch := newTestService()

		require.NoError(t, svc.Publish(ctx, sampleNotification()))
		require.Len(t, ch.published, 1)
		assert.Equal(t, constvars.NotificationQueueName, ch.published[0].queue)

		var decoded models.AppointmentNotification
		require.NoError(t, json.Unmarshal(ch.published[0].body, &decoded))
		assert.Equal(t, "a1", decoded.Appointment.ID)
	})

	t.Run("Broker nack is an error", func(t *testing.T) {
		svc, ch := newTestService()
		ch.nack = true

		assert.Error(t, svc.Publish(ctx, sampleNotification()))
	})

	t.Run("Publish failure", func(t *testing.T) {
		svc, ch := newTestService()
		ch.publishErr = errors.New("channel closed")

		assert.Error(t, svc.Publish(ctx, sampleNotification()))
	})

	t.Run("Dead letter goes to its own queue", func(t *testing.T) {
		svc, ch := newTestService()

		require.NoError(t, svc.EnqueueToDeadQueue(ctx, sampleNotification()))
		assert.Equal(t, constvars.NotificationDeadLetterQueueName, ch.published[0].queue)
	})
}

func TestService_FetchN(t *testing.T) {
	ctx := context.Background()
	svc, ch := newTestService()

	body, err := json.Marshal(sampleNotification())
	require.NoError(t, err)
	ch.deliveries[constvars.NotificationQueueName] = []amqp.Delivery{
		{DeliveryTag: 1, Body: body},
		{DeliveryTag: 2, Body: []byte("not json")},
		{DeliveryTag: 3, Body: body},
	}

	items, err := svc.FetchN(ctx, 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(1), items[0].DeliveryTag)
	assert.Equal(t, uint64(3), items[1].DeliveryTag)
	assert.Equal(t, models.NotificationEventCreated, items[0].Notification.Event)

	require.Len(t, ch.published, 1)
	assert.Equal(t, constvars.NotificationDeadLetterQueueName, ch.published[0].queue)
	assert.Equal(t, []uint64{2}, ch.acked)
}
