package notificationqueue

import (
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// channel is the part of *amqp.Channel the service uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Get(queue string, autoAck bool) (amqp.Delivery, bool, error)
	Ack(tag uint64, multiple bool) error
	Close() error
}

// Service publishes appointment notifications to a durable RabbitMQ queue
// with publisher confirms and hands them back to the delivery worker.
type Service struct {
	ch       channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

var _ contracts.NotificationQueue = (*Service)(nil)

// NewService declares the durable standard and dead-letter queues, sets QoS
// and enables publisher confirms.
func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	for _, queue := range []string{constvars.NotificationQueueName, constvars.NotificationDeadLetterQueueName} {
		_, err = ch.QueueDeclare(
			queue, // name
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return nil, err
		}
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

// Publish enqueues a notification and waits for the broker to confirm it.
func (s *Service) Publish(ctx context.Context, notification models.AppointmentNotification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("NotificationQueue.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, notification.Appointment.ID),
		zap.String(constvars.LoggingNotificationEventKey, string(notification.Event)),
		zap.String(constvars.LoggingQueueNameKey, constvars.NotificationQueueName),
	)
	return s.publishJSON(ctx, constvars.NotificationQueueName, notification)
}

// Reenqueue puts a notification back at the tail of the standard queue.
func (s *Service) Reenqueue(ctx context.Context, notification models.AppointmentNotification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("NotificationQueue.Reenqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, notification.Appointment.ID),
	)
	return s.publishJSON(ctx, constvars.NotificationQueueName, notification)
}

func (s *Service) EnqueueToDeadQueue(ctx context.Context, notification models.AppointmentNotification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("NotificationQueue.EnqueueToDeadQueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, notification.Appointment.ID),
		zap.String(constvars.LoggingQueueNameKey, constvars.NotificationDeadLetterQueueName),
	)
	return s.publishJSON(ctx, constvars.NotificationDeadLetterQueueName, notification)
}

// FetchN pulls up to max messages without auto-ack. Payloads that cannot be
// decoded are moved to the dead-letter queue so they do not loop forever.
func (s *Service) FetchN(ctx context.Context, max int) ([]contracts.QueuedNotification, error) {
	if max <= 0 {
		max = 1
	}
	items := make([]contracts.QueuedNotification, 0, max)

	for i := 0; i < max; i++ {
		d, ok, err := s.ch.Get(constvars.NotificationQueueName, false)
		if err != nil {
			return nil, exceptions.ErrRabbitMQConsumeMessage(err, constvars.NotificationQueueName)
		}
		if !ok {
			break
		}

		var notification models.AppointmentNotification
		if err := json.Unmarshal(d.Body, &notification); err != nil {
			s.log.Error("NotificationQueue.FetchN poison message moved to dead-letter queue",
				zap.Uint64("delivery_tag", d.DeliveryTag),
				zap.Error(exceptions.ErrNotificationPayloadUnreadable(err)),
			)
			if err := s.publish(ctx, constvars.NotificationDeadLetterQueueName, d.Body); err != nil {
				return nil, err
			}
			_ = s.ch.Ack(d.DeliveryTag, false)
			continue
		}
		items = append(items, contracts.QueuedNotification{DeliveryTag: d.DeliveryTag, Notification: notification})
	}
	return items, nil
}

func (s *Service) Ack(ctx context.Context, deliveryTag uint64) error {
	if err := s.ch.Ack(deliveryTag, false); err != nil {
		return exceptions.ErrRabbitMQConsumeMessage(err, constvars.NotificationQueueName)
	}
	return nil
}

func (s *Service) Close() error {
	return s.ch.Close()
}

func (s *Service) publishJSON(ctx context.Context, queue string, notification models.AppointmentNotification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publish(ctx, queue, body)
}

func (s *Service) publish(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queue)
	}
	return nil
}
