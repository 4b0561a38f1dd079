package notifier

import (
	"context"
	"fmt"

	"shareit/pkg/kafka"
	"shareit/pkg/logger"
	"shareit/pkg/model"
)

// Notification is a message addressed to one user about one booking.
type Notification struct {
	UserID    int64
	BookingID int64
	Text      string
}

// Sink delivers notifications.
type Sink interface {
	Send(ctx context.Context, n Notification) error
}

type logSink struct {
	log *logger.Logger
}

// LogSink writes each notification to the structured log.
func LogSink(log *logger.Logger) Sink {
	return &logSink{log: log}
}

func (s *logSink) Send(ctx context.Context, n Notification) error {
	s.log.FromContext(ctx).Info("Notification",
		"user_id", n.UserID,
		"booking_id", n.BookingID,
		"text", n.Text,
	)
	return nil
}

type Notifier struct {
	sink Sink
	log  *logger.Logger
}

func New(sink Sink, log *logger.Logger) *Notifier {
	return &Notifier{sink: sink, log: log}
}

// Handle consumes one booking event. Malformed and unknown events are
// permanent failures so the consumer sends them to the DLQ without retrying.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	var event model.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("failed to decode booking event", err)
	}

	notification, err := notificationFor(msg.GetEventType(), event)
	if err != nil {
		return kafka.NewPermanentError("unsupported booking event", err)
	}

	if err := n.sink.Send(ctx, notification); err != nil {
		return kafka.NewTransientError("failed to send notification", err)
	}
	return nil
}

func notificationFor(eventType string, e model.BookingEvent) (Notification, error) {
	switch eventType {
	case model.EventBookingCreated:
		return Notification{
			UserID:    e.OwnerID,
			BookingID: e.BookingID,
			Text:      fmt.Sprintf("Item %d was requested for %s - %s", e.ItemID, e.Start.Format(timeLayout), e.End.Format(timeLayout)),
		}, nil
	case model.EventBookingApproved:
		return Notification{
			UserID:    e.BookerID,
			BookingID: e.BookingID,
			Text:      fmt.Sprintf("Your booking of item %d was approved", e.ItemID),
		}, nil
	case model.EventBookingRejected:
		return Notification{
			UserID:    e.BookerID,
			BookingID: e.BookingID,
			Text:      fmt.Sprintf("Your booking of item %d was rejected", e.ItemID),
		}, nil
	default:
		return Notification{}, fmt.Errorf("event type %q", eventType)
	}
}

const timeLayout = "2006-01-02 15:04"
