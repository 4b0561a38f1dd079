package config

import "time"

const (
	DefaultEnvFile = ".env"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "shareit"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "9090"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultServerURL           = "http://localhost:9090"
	DefaultForwardTimeout      = 10 * time.Second
	DefaultUpstreamWaitTimeout = 30 * time.Second

	DefaultBookingEventsEnabled        = false
	DefaultBookingEventsTopic          = "shareit.bookings"
	DefaultBookingEventsDLQTopic       = "shareit.bookings.dlq"
	DefaultBookingEventsPublishTimeout = 2 * time.Second
	DefaultNotifierGroupID             = "shareit-notifier"
)
