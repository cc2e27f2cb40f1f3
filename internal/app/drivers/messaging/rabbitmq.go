package messaging

import (
	"booking-service/internal/app/config"
	"fmt"
	"net/url"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const connectionName = "booking-service"

// AMQPURL builds the broker URL, escaping credentials and the vhost.
func AMQPURL(cfg config.RabbitMQ) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Path:   "/" + url.PathEscape(cfg.VHost),
	}
	if cfg.VHost == "" || cfg.VHost == "/" {
		u.Path = "/"
	}
	return u.String()
}

func NewRabbitMQ(driverConfig *config.DriverConfig, log *zap.Logger) (*amqp091.Connection, error) {
	props := amqp091.NewConnectionProperties()
	props.SetClientConnectionName(connectionName)

	conn, err := amqp091.DialConfig(AMQPURL(driverConfig.RabbitMQ), amqp091.Config{
		Heartbeat:  time.Duration(driverConfig.RabbitMQ.HeartbeatInSeconds) * time.Second,
		Locale:     "en_US",
		Properties: props,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitMQ at %s:%s: %w", driverConfig.RabbitMQ.Host, driverConfig.RabbitMQ.Port, err)
	}
	log.Info("Successfully connected to rabbitMQ",
		zap.String("host", driverConfig.RabbitMQ.Host),
		zap.String("vhost", driverConfig.RabbitMQ.VHost),
	)
	return conn, nil
}
