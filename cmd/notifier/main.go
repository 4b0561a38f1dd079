package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"shareit/internal/notifier"
	"shareit/pkg/config"
	"shareit/pkg/kafka"
	kafka_config "shareit/pkg/kafka/config"
	kafka_middleware "shareit/pkg/kafka/middleware"
)

const ServiceName = "shareit-notifier"

func main() {
	cfg := config.Load(ServiceName)

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	n := notifier.New(notifier.LogSink(cfg.Log), cfg.Log)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.BookingEventsTopic,
		cfg.NotifierGroupID,
		cfg.BookingEventsDLQTopic,
		n.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create booking event consumer", "error", err)
	}

	counters := kafka_middleware.NewCounters()
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(counters.ConsumerMiddleware())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting booking notifier", "topic", cfg.BookingEventsTopic, "group", cfg.NotifierGroupID)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped", "error", err)
	}

	stats := counters.Snapshot()
	cfg.Log.Info("Booking notifier stopped",
		"consumed", stats.Consumed,
		"failed", stats.ConsumeFailed,
		"avg_duration", stats.AvgConsumeDuration.String(),
	)
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
}
