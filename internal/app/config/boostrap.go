package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Database
	Redis          *redis.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// WorkerStops run in order before any connection is closed, so in-flight
	// notifications can still reach the broker.
	WorkerStops []func()
}

// Shutdown stops the workers and then closes every connection. A failing
// close does not prevent the others from running; all failures are returned.
func (b *Bootstrap) Shutdown(ctx context.Context) error {
	for _, stop := range b.WorkerStops {
		stop()
	}
	if len(b.WorkerStops) > 0 {
		b.Logger.Info("Successfully stopped background workers", zap.Int("count", len(b.WorkerStops)))
	}

	var errs []error
	closeOne := func(name string, closeFn func() error) {
		if err := closeFn(); err != nil {
			b.Logger.Error("Failed closing "+name, zap.Error(err))
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
			return
		}
		b.Logger.Info("Successfully closing " + name)
	}

	if b.RabbitMQ != nil && !b.RabbitMQ.IsClosed() {
		closeOne("RabbitMQ", b.RabbitMQ.Close)
	}
	if b.MongoDB != nil {
		closeOne("MongoDB", func() error { return b.MongoDB.Client().Disconnect(ctx) })
	}
	if b.Redis != nil {
		closeOne("Redis", b.Redis.Close)
	}

	_ = b.Logger.Sync()
	return errors.Join(errs...)
}
