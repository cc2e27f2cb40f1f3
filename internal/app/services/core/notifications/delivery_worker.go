package notifications

import (
	"booking-service/internal/app/config"
	"booking-service/internal/app/contracts"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/utils"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultDeliveryInterval    = 10 * time.Second
	defaultDeliveryBatchSize   = 10
	defaultMaxDeliveryAttempts = 5
)

// DeliveryWorker drains the notification queue into the mailer with
// at-least-once semantics. Failed sends go back to the tail of the queue with
// an incremented failure count until they reach the dead-letter queue.
type DeliveryWorker struct {
	log         *zap.Logger
	cfg         *config.InternalConfig
	queue       contracts.NotificationQueue
	mailer      contracts.AppointmentMailer
	running     sync.Mutex
	stop        chan struct{}
	stopped     chan struct{}
	stopOnce    sync.Once
	started     bool
	maxAttempts int
}

func NewDeliveryWorker(log *zap.Logger, cfg *config.InternalConfig, queue contracts.NotificationQueue, mailer contracts.AppointmentMailer) *DeliveryWorker {
	maxAttempts := cfg.Notification.MaxDeliveryAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxDeliveryAttempts
	}
	return &DeliveryWorker{
		log:         log,
		cfg:         cfg,
		queue:       queue,
		mailer:      mailer,
		stop:        make(chan struct{}),
		stopped:     make(chan struct{}),
		maxAttempts: maxAttempts,
	}
}

// Start begins the ticker loop.
func (w *DeliveryWorker) Start(ctx context.Context) {
	interval := time.Duration(w.cfg.Notification.DeliveryIntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = defaultDeliveryInterval
	}
	ticker := time.NewTicker(interval)
	w.started = true

	w.log.Info("notifications.DeliveryWorker started", zap.Duration("interval", interval))
	go func() {
		defer close(w.stopped)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for the current batch to finish.
func (w *DeliveryWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
	if w.started {
		<-w.stopped
	}
}

// RunOnce processes one batch. Overlapping ticks are skipped.
func (w *DeliveryWorker) RunOnce(ctx context.Context) {
	if !w.running.TryLock() {
		return
	}
	defer w.running.Unlock()

	batch := w.cfg.Notification.DeliveryBatchSize
	if batch <= 0 {
		batch = defaultDeliveryBatchSize
	}
	items, err := w.queue.FetchN(ctx, batch)
	if err != nil {
		w.log.Error("notifications.DeliveryWorker error calling queue.FetchN", zap.Error(err))
		return
	}

	for _, item := range items {
		w.processItem(ctx, item)
	}
}

func (w *DeliveryWorker) processItem(ctx context.Context, item contracts.QueuedNotification) {
	notification := item.Notification
	fields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, notification.RequestID),
		zap.String(constvars.LoggingAppointmentIDKey, notification.Appointment.ID),
		zap.String(constvars.LoggingNotificationEventKey, string(notification.Event)),
		zap.Int("failed_count", notification.FailedCount),
	}

	err := utils.LogOperation(w.log, "DeliveryWorker.SendAppointmentNotification", notification.RequestID, func() error {
		return w.mailer.SendAppointmentNotification(ctx, notification)
	}, fields[1], fields[2])
	if err == nil {
		if ackErr := w.queue.Ack(ctx, item.DeliveryTag); ackErr != nil {
			w.log.Error("notifications.DeliveryWorker ack failed after send", append(fields, zap.Error(ackErr))...)
			return
		}
		w.log.Info("notifications.DeliveryWorker notification delivered", fields...)
		return
	}

	notification.FailedCount++
	if notification.FailedCount >= w.maxAttempts {
		if dlqErr := w.queue.EnqueueToDeadQueue(ctx, notification); dlqErr != nil {
			w.log.Error("notifications.DeliveryWorker enqueue to dead-letter queue failed", append(fields, zap.Error(dlqErr))...)
			return
		}
		_ = w.queue.Ack(ctx, item.DeliveryTag)
		w.log.Error("notifications.DeliveryWorker gave up, moved to dead-letter queue", append(fields, zap.Error(err))...)
		return
	}

	if requeueErr := w.queue.Reenqueue(ctx, notification); requeueErr != nil {
		w.log.Error("notifications.DeliveryWorker reenqueue failed", append(fields, zap.Error(requeueErr))...)
		return
	}
	_ = w.queue.Ack(ctx, item.DeliveryTag)
	w.log.Warn("notifications.DeliveryWorker send failed, requeued", append(fields, zap.Error(err))...)
}
