package config

import (
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/utils"
	"log"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
			URI:      utils.GetEnvString("MONGODB_URI", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			Encoding:            utils.GetEnvString("LOGGER_ENCODING", ""),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:               utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:               utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username:           utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password:           utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			VHost:              utils.GetEnvString("RABBITMQ_VHOST", "/"),
			HeartbeatInSeconds: utils.GetEnvInt("RABBITMQ_HEARTBEAT_IN_SECONDS", 10),
		},
		SMTP: SMTP{
			Host:     utils.GetEnvString("SMTP_HOST", "localhost"),
			Port:     utils.GetEnvInt("SMTP_PORT", 2525),
			Username: utils.GetEnvString("SMTP_USERNAME", ""),
			Password: utils.GetEnvString("SMTP_PASSWORD", ""),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	internalConfig := &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Europe/Madrid"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			OperatorMaxRequests:        utils.GetEnvInt("APP_OPERATOR_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
			CorsAllowedOrigins:         utils.GetEnvStringSlice("APP_CORS_ALLOWED_ORIGINS", []string{"*"}),
			OperatorAPIKeyHash:         utils.GetEnvString("APP_OPERATOR_API_KEY_HASH", ""),
		},
		JWT: AppJWT{
			Secret:            utils.GetEnvString("JWT_SECRET", ""),
			Issuer:            utils.GetEnvString("JWT_ISSUER", ""),
			TokenTTLInMinutes: utils.GetEnvInt("JWT_TOKEN_TTL_IN_MINUTES", 60),
		},
		MongoDB: AppMongoDB{
			BookingDBName: utils.GetEnvString("MONGODB_BOOKING_DB_NAME", "booking"),
		},
		Booking: AppBooking{
			CalendarFile:                  utils.GetEnvString("BOOKING_CALENDAR_FILE", ""),
			MaxAvailabilityRangeDays:      utils.GetEnvInt("BOOKING_MAX_AVAILABILITY_RANGE_DAYS", constvars.DefaultMaxAvailabilityRangeDays),
			AvailabilityCacheTTLInSeconds: utils.GetEnvInt("BOOKING_AVAILABILITY_CACHE_TTL_IN_SECONDS", 30),
			CreateAttemptsPerWindow:       utils.GetEnvInt("BOOKING_CREATE_ATTEMPTS_PER_WINDOW", 5),
			CreateAttemptWindowInSeconds:  utils.GetEnvInt("BOOKING_CREATE_ATTEMPT_WINDOW_IN_SECONDS", 600),
			CreateBurstPerIP:              utils.GetEnvInt("BOOKING_CREATE_BURST_PER_IP", 10),
			CreateBlockInSeconds:          utils.GetEnvInt("BOOKING_CREATE_BLOCK_IN_SECONDS", 300),
		},
		Notification: AppNotification{
			BusinessName:                 utils.GetEnvString("NOTIFICATION_BUSINESS_NAME", "Booking"),
			BusinessAddress:              utils.GetEnvString("NOTIFICATION_BUSINESS_ADDRESS", ""),
			EmailSender:                  utils.GetEnvString("NOTIFICATION_EMAIL_SENDER", "no-reply@localhost"),
			AdminEmail:                   utils.GetEnvString("NOTIFICATION_ADMIN_EMAIL", ""),
			DispatchTimeoutInSeconds:     utils.GetEnvInt("NOTIFICATION_DISPATCH_TIMEOUT_IN_SECONDS", 10),
			QueuePrefetch:                utils.GetEnvInt("NOTIFICATION_QUEUE_PREFETCH", 10),
			DeliveryIntervalInSeconds:    utils.GetEnvInt("NOTIFICATION_DELIVERY_INTERVAL_IN_SECONDS", 5),
			DeliveryBatchSize:            utils.GetEnvInt("NOTIFICATION_DELIVERY_BATCH_SIZE", 20),
			MaxDeliveryAttempts:          utils.GetEnvInt("NOTIFICATION_MAX_DELIVERY_ATTEMPTS", 5),
			EmailsPerSecond:              utils.GetEnvInt("NOTIFICATION_EMAILS_PER_SECOND", 2),
			ReconciliationCronSpec:       utils.GetEnvString("NOTIFICATION_RECONCILIATION_CRON_SPEC", "@every 5m"),
			ReconciliationGraceInMinutes: utils.GetEnvInt("NOTIFICATION_RECONCILIATION_GRACE_IN_MINUTES", 10),
			ReconciliationBatchSize:      utils.GetEnvInt("NOTIFICATION_RECONCILIATION_BATCH_SIZE", 50),
		},
	}

	calendar, err := LoadBusinessCalendar(internalConfig.Booking.CalendarFile)
	if err != nil {
		log.Fatalf("Error loading business calendar: %v", err)
	}
	internalConfig.Booking.Calendar = calendar

	return internalConfig
}
