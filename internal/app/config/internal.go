package config

type InternalConfig struct {
	App          App             `mapstructure:"app"`
	JWT          AppJWT          `mapstructure:"jwt"`
	MongoDB      AppMongoDB      `mapstructure:"mongodb"`
	Booking      AppBooking      `mapstructure:"booking"`
	Notification AppNotification `mapstructure:"notification"`
}

type App struct {
	Env                        string   `mapstructure:"env"`
	Port                       string   `mapstructure:"port"`
	Version                    string   `mapstructure:"version"`
	Address                    string   `mapstructure:"address"`
	Timezone                   string   `mapstructure:"timezone"`
	EndpointPrefix             string   `mapstructure:"endpoint_prefix"`
	MaxRequests                int      `mapstructure:"max_requests"`
	OperatorMaxRequests        int      `mapstructure:"operator_max_requests"`
	ShutdownTimeoutInSeconds   int      `mapstructure:"shutdown_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int      `mapstructure:"request_body_limit_in_megabyte"`
	CorsAllowedOrigins         []string `mapstructure:"cors_allowed_origins"`
	// OperatorAPIKeyHash is the bcrypt hash of the operator API key
	OperatorAPIKeyHash string `mapstructure:"operator_api_key_hash"`
}

type AppJWT struct {
	Secret            string `mapstructure:"secret"`
	Issuer            string `mapstructure:"issuer"`
	TokenTTLInMinutes int    `mapstructure:"token_ttl_in_minutes"`
}

type AppMongoDB struct {
	BookingDBName string `mapstructure:"booking_db_name"`
}

type AppBooking struct {
	CalendarFile                  string `mapstructure:"calendar_file"`
	MaxAvailabilityRangeDays      int    `mapstructure:"max_availability_range_days"`
	AvailabilityCacheTTLInSeconds int    `mapstructure:"availability_cache_ttl_in_seconds"`
	CreateAttemptsPerWindow       int    `mapstructure:"create_attempts_per_window"`
	CreateAttemptWindowInSeconds  int    `mapstructure:"create_attempt_window_in_seconds"`
	CreateBurstPerIP              int    `mapstructure:"create_burst_per_ip"`
	CreateBlockInSeconds          int    `mapstructure:"create_block_in_seconds"`
	// Calendar is loaded from CalendarFile, falling back to the built-in grid
	Calendar *BusinessCalendar
}

type AppNotification struct {
	BusinessName                 string `mapstructure:"business_name"`
	BusinessAddress              string `mapstructure:"business_address"`
	EmailSender                  string `mapstructure:"email_sender"`
	AdminEmail                   string `mapstructure:"admin_email"`
	DispatchTimeoutInSeconds     int    `mapstructure:"dispatch_timeout_in_seconds"`
	QueuePrefetch                int    `mapstructure:"queue_prefetch"`
	DeliveryIntervalInSeconds    int    `mapstructure:"delivery_interval_in_seconds"`
	DeliveryBatchSize            int    `mapstructure:"delivery_batch_size"`
	MaxDeliveryAttempts          int    `mapstructure:"max_delivery_attempts"`
	EmailsPerSecond              int    `mapstructure:"emails_per_second"`
	ReconciliationCronSpec       string `mapstructure:"reconciliation_cron_spec"`
	ReconciliationGraceInMinutes int    `mapstructure:"reconciliation_grace_in_minutes"`
	ReconciliationBatchSize      int    `mapstructure:"reconciliation_batch_size"`
}
