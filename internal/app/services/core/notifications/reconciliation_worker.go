package notifications

import (
	"booking-service/internal/app/config"
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/constvars"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultReconciliationSpec  = "@every 5m"
	defaultReconciliationGrace = 10 * time.Minute
	defaultReconciliationBatch = 50
	leaderLockTTL              = 2 * time.Minute
)

// ReconciliationWorker periodically re-dispatches notifications whose marker
// is still unset after a grace period. Only the instance holding the leader
// lock does the work.
type ReconciliationWorker struct {
	log     *zap.Logger
	cfg     *config.InternalConfig
	locker  contracts.LockerService
	repo    contracts.AppointmentRepository
	trigger contracts.NotificationTrigger
	now     func() time.Time
	stop    chan struct{}
	cron    *cron.Cron
	runCtx  context.Context
	cancel  context.CancelFunc
}

func NewReconciliationWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	locker contracts.LockerService,
	repo contracts.AppointmentRepository,
	trigger contracts.NotificationTrigger,
) *ReconciliationWorker {
	return &ReconciliationWorker{
		log:     log,
		cfg:     cfg,
		locker:  locker,
		repo:    repo,
		trigger: trigger,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

func (w *ReconciliationWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Notification.ReconciliationCronSpec
	if spec == "" {
		spec = defaultReconciliationSpec
	}
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("notifications.ReconciliationWorker invalid cron spec, falling back",
			zap.String("spec", spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultReconciliationSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop halts the schedule and waits for a running pass to finish.
func (w *ReconciliationWorker) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *ReconciliationWorker) runOnce(ctx context.Context) {
	lease, err := w.locker.Acquire(ctx, constvars.RedisKeyReconciliationLeader, leaderLockTTL)
	if err != nil {
		w.log.Warn("notifications.ReconciliationWorker leader lock attempt failed", zap.Error(err))
		return
	}
	if lease == nil {
		w.log.Info("notifications.ReconciliationWorker leader lock held by another instance")
		return
	}
	defer func() {
		if err := w.locker.Release(context.WithoutCancel(ctx), lease); err != nil {
			w.log.Error("notifications.ReconciliationWorker lease release failed", zap.Error(err))
		}
	}()

	extendCtx, cancelExtend := context.WithCancel(ctx)
	defer cancelExtend()
	go func() {
		tick := time.NewTicker(lease.TTL / 2)
		defer tick.Stop()
		for {
			select {
			case <-extendCtx.Done():
				return
			case <-w.stop:
				return
			case <-tick.C:
				if err := w.locker.Extend(extendCtx, lease); err != nil {
					w.log.Warn("notifications.ReconciliationWorker failed to extend leader lease", zap.Error(err))
				}
			}
		}
	}()

	dispatched := w.Reconcile(ctx)
	w.log.Info("notifications.ReconciliationWorker pass finished", zap.Int(constvars.LoggingCountKey, dispatched))
}

// Reconcile re-dispatches every overdue notification and returns how many
// were attempted.
func (w *ReconciliationWorker) Reconcile(ctx context.Context) int {
	grace := time.Duration(w.cfg.Notification.ReconciliationGraceInMinutes) * time.Minute
	if grace <= 0 {
		grace = defaultReconciliationGrace
	}
	batch := w.cfg.Notification.ReconciliationBatchSize
	if batch <= 0 {
		batch = defaultReconciliationBatch
	}
	olderThan := w.now().Add(-grace)

	attempted := 0
	for _, event := range []models.NotificationEvent{models.NotificationEventCreated, models.NotificationEventConfirmed} {
		pending, err := w.repo.FindPendingNotifications(ctx, event, olderThan, batch)
		if err != nil {
			w.log.Error("notifications.ReconciliationWorker error calling repo.FindPendingNotifications",
				zap.String(constvars.LoggingNotificationEventKey, string(event)),
				zap.Error(err),
			)
			continue
		}

		for _, appointment := range pending {
			if ctx.Err() != nil {
				return attempted
			}
			attempted++
			if err := w.trigger.Dispatch(ctx, event, appointment); err != nil {
				w.log.Error("notifications.ReconciliationWorker dispatch failed",
					zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
					zap.String(constvars.LoggingNotificationEventKey, string(event)),
					zap.Error(err),
				)
			}
		}
	}
	return attempted
}
