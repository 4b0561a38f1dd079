package service

import (
	"context"
	"strconv"
	"time"

	"shareit/pkg/kafka"
	"shareit/pkg/logger"
	"shareit/pkg/model"
)

const eventSource = "shareit-server"

// EventPublisher announces booking lifecycle changes.
type EventPublisher interface {
	Publish(ctx context.Context, booking *model.Booking, at time.Time) error
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaEventPublisher struct {
	producer messagePublisher
}

// NewKafkaEventPublisher keys every message by booking id so one booking's
// events stay ordered within a partition.
func NewKafkaEventPublisher(producer messagePublisher) EventPublisher {
	return &kafkaEventPublisher{producer: producer}
}

func (p *kafkaEventPublisher) Publish(ctx context.Context, booking *model.Booking, at time.Time) error {
	msg, err := kafka.NewMessage().
		WithKey(strconv.FormatInt(booking.ID, 10)).
		WithValue(model.NewBookingEvent(booking, at)).
		WithEventType(model.EventTypeForStatus(booking.Status)).
		WithSource(eventSource).
		WithCorrelationID(logger.RequestIDFromContext(ctx)).
		WithTimestamp(at).
		Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

type noopEventPublisher struct{}

// NoopEventPublisher is used when booking events are disabled.
func NoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) Publish(context.Context, *model.Booking, time.Time) error {
	return nil
}
