package main

import (
	bookinghandler "shareit/internal/bookings/handler"
	bookingrepository "shareit/internal/bookings/repository"
	bookingservice "shareit/internal/bookings/service"
	bookingvalidator "shareit/internal/bookings/validator"
	"shareit/internal/health"
	itemhandler "shareit/internal/items/handler"
	itemrepository "shareit/internal/items/repository"
	itemservice "shareit/internal/items/service"
	itemvalidator "shareit/internal/items/validator"
	requesthandler "shareit/internal/requests/handler"
	requestrepository "shareit/internal/requests/repository"
	requestservice "shareit/internal/requests/service"
	requestvalidator "shareit/internal/requests/validator"
	userhandler "shareit/internal/users/handler"
	userrepository "shareit/internal/users/repository"
	userservice "shareit/internal/users/service"
	uservalidator "shareit/internal/users/validator"
	"shareit/pkg/app"
	"shareit/pkg/clock"
	"shareit/pkg/config"
	"shareit/pkg/contracts"
	"shareit/pkg/kafka"
	kafka_config "shareit/pkg/kafka/config"
	kafka_middleware "shareit/pkg/kafka/middleware"
)

const ServiceName = "shareit-server"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting ShareIt server")
	serverApp := app.NewApplication(cfg)

	events := initEventPublisher(cfg, serverApp)
	handlers := initHandlers(cfg, events)

	healthHandler := health.NewHandler("mongo", health.MongoCheck(cfg.Client.Mongo), cfg.Log)
	serverApp.SetApp(healthHandler, handlers...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, events bookingservice.EventPublisher) []contracts.Handler {
	clk := clock.System()

	userRepo := userrepository.NewMongoUserRepository(cfg)
	itemRepo := itemrepository.NewMongoItemRepository(cfg)
	commentRepo := itemrepository.NewMongoCommentRepository(cfg)
	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	requestRepo := requestrepository.NewMongoRequestRepository(cfg)

	users := userservice.NewUserService(userRepo, uservalidator.NewUserValidator(), cfg)
	items := itemservice.NewItemService(
		itemRepo,
		commentRepo,
		userRepo,
		bookingRepo,
		requestRepo,
		itemvalidator.NewItemValidator(),
		clk,
		cfg,
	)
	bookings := bookingservice.NewBookingService(
		bookingRepo,
		userRepo,
		itemRepo,
		events,
		bookingvalidator.NewBookingValidator(),
		clk,
		cfg,
	)
	requests := requestservice.NewRequestService(
		requestRepo,
		userRepo,
		itemRepo,
		requestvalidator.NewRequestValidator(),
		clk,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return []contracts.Handler{
		userhandler.NewUserHandler(users, cfg.Log),
		itemhandler.NewItemHandler(items, cfg.Log),
		bookinghandler.NewBookingHandler(bookings, cfg.Log),
		requesthandler.NewRequestHandler(requests, cfg.Log),
	}
}

func initEventPublisher(cfg *config.Config, serverApp *app.Application) bookingservice.EventPublisher {
	if !cfg.BookingEventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return bookingservice.NoopEventPublisher()
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create booking event producer", "error", err)
	}
	counters := kafka_middleware.NewCounters()
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(counters.ProducerMiddleware())

	serverApp.OnShutdown(func() error {
		stats := counters.Snapshot()
		cfg.Log.Info("Booking event producer stats",
			"published", stats.Published,
			"failed", stats.PublishFailed,
			"avg_duration", stats.AvgPublishDuration.String(),
		)
		return producer.Close()
	})
	return bookingservice.NewKafkaEventPublisher(producer)
}
