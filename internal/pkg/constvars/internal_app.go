package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_OWNER_REF_KEY            ContextKey = "owner_ref"
	CONTEXT_OPERATOR_KEY             ContextKey = "operator"
)

const (
	REQUEST_ID_PREFIX = "BKNG_SVC_"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
	MonthLayout = "2006-01"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)
