package config

const (
	EnvFile = "ENV_FILE"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvServerURL           = "SERVER_URL"
	EnvForwardTimeout      = "FORWARD_TIMEOUT"
	EnvUpstreamWaitTimeout = "UPSTREAM_WAIT_TIMEOUT"

	EnvBookingEventsEnabled        = "BOOKING_EVENTS_ENABLED"
	EnvBookingEventsTopic          = "BOOKING_EVENTS_TOPIC"
	EnvBookingEventsDLQTopic       = "BOOKING_EVENTS_DLQ_TOPIC"
	EnvBookingEventsPublishTimeout = "BOOKING_EVENTS_PUBLISH_TIMEOUT"
	EnvNotifierGroupID             = "NOTIFIER_GROUP_ID"
)
