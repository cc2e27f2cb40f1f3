package config

type (
	// DriverConfig holds connection settings for every backing service the
	// booking service talks to.
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		SMTP     SMTP
	}
	// MongoDB is used for appointments. URI wins over the individual parts.
	MongoDB struct {
		URI      string
		Host     string
		Port     string
		Username string
		Password string
	}
	// Redis backs the availability cache, the leader lease and the
	// per-email booking quota.
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level string
		// Encoding is json or console. Empty picks by environment.
		Encoding            string
		OutputFileName      string
		OutputErrorFileName string
	}
	// RabbitMQ carries lifecycle notifications to the delivery worker.
	RabbitMQ struct {
		Host               string
		Port               string
		Username           string
		Password           string
		VHost              string
		HeartbeatInSeconds int
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
	}
)
