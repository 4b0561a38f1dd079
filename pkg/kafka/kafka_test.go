package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"shareit/pkg/logger"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func buildMessage(t *testing.T) Message {
	t.Helper()
	msg, err := NewMessage().
		WithKey("42").
		WithValue(map[string]int64{"bookingId": 42}).
		WithEventType("booking.created").
		WithCorrelationID("req-1").
		Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return msg
}

func TestMessageBuilder(t *testing.T) {
	msg := buildMessage(t)

	if msg.GetEventID() == "" {
		t.Error("expected generated event id")
	}
	if msg.GetEventType() != "booking.created" || msg.GetCorrelationID() != "req-1" {
		t.Errorf("unexpected headers %v", msg.Headers)
	}
	if string(msg.Value) != `{"bookingId":42}` {
		t.Errorf("unexpected value %s", msg.Value)
	}

	if _, err := NewMessage().WithValue(make(chan int)).Build(); err == nil {
		t.Error("expected error for unencodable value")
	}
}

func TestMessage_RetryCount(t *testing.T) {
	msg := Message{Headers: map[string]string{}}
	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	if got := msg.GetRetryCount(); got != 12 {
		t.Errorf("expected 12 retries, got %d", got)
	}
}

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := newProducer(writer, nil, "shareit.bookings", logger.Discard())

	var seen []string
	p.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
		seen = append(seen, msg.Topic)
		return next(ctx, msg)
	})

	if err := p.Publish(context.Background(), buildMessage(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.messages) != 1 || string(writer.messages[0].Key) != "42" {
		t.Fatalf("unexpected written messages %v", writer.messages)
	}
	if len(seen) != 1 || seen[0] != "shareit.bookings" {
		t.Errorf("middleware saw %v", seen)
	}

	if err := p.Publish(context.Background(), Message{Value: []byte("x")}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "1"}); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("expected ErrEmptyValue, got %v", err)
	}

	_ = p.Close()
	if err := p.Publish(context.Background(), buildMessage(t)); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("expected ErrProducerClosed, got %v", err)
	}
	if !writer.closed {
		t.Error("expected writer to be closed")
	}
}

func TestProducer_DivertsToDLQ(t *testing.T) {
	writeErr := errors.New("connection refused")
	writer := &fakeWriter{err: writeErr}
	dlq := &fakeWriter{}
	p := newProducer(writer, dlq, "shareit.bookings", logger.Discard())

	err := p.Publish(context.Background(), buildMessage(t))
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected original error, got %v", err)
	}
	if len(dlq.messages) != 1 {
		t.Fatalf("expected one DLQ message, got %d", len(dlq.messages))
	}
	if got := header(dlq.messages[0], HeaderOriginalTopic); got != "shareit.bookings" {
		t.Errorf("unexpected original topic %q", got)
	}
	if got := header(dlq.messages[0], HeaderDLQError); got != writeErr.Error() {
		t.Errorf("unexpected dlq error %q", got)
	}
}

func TestConsumer_ProcessMessage(t *testing.T) {
	tests := []struct {
		name      string
		failures  []error
		wantCalls int
		wantDLQ   int
		wantErr   bool
	}{
		{"success", nil, 1, 0, false},
		{"transient then success", []error{errors.New("i/o timeout")}, 2, 0, false},
		{"permanent goes to DLQ", []error{NewPermanentError("bad payload", nil)}, 1, 1, true},
		{"retries exhausted", []error{
			errors.New("timeout"), errors.New("timeout"), errors.New("timeout"),
		}, 3, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			handler := func(context.Context, Message) error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			}
			dlq := &fakeWriter{}
			c := newConsumer(nil, dlq, "shareit.bookings", "notifier", 2, handler, logger.Discard())

			err := c.processMessage(context.Background(), Message{Headers: map[string]string{}})
			if (err != nil) != tt.wantErr {
				t.Errorf("unexpected error state: %v", err)
			}
			if calls != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, calls)
			}
			if len(dlq.messages) != tt.wantDLQ {
				t.Errorf("expected %d DLQ messages, got %d", tt.wantDLQ, len(dlq.messages))
			}
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorType
	}{
		{nil, ErrorTypeUnknown},
		{errors.New("dial tcp: Connection Refused"), ErrorTypeTransient},
		{NewTransientError("flaky", nil), ErrorTypeTransient},
		{errors.New("json: cannot unmarshal"), ErrorTypePermanent},
	}
	for _, tt := range tests {
		if got := ClassifyError(tt.err); got != tt.want {
			t.Errorf("ClassifyError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
