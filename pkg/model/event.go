package model

import "time"

const (
	EventBookingCreated  = "booking.created"
	EventBookingApproved = "booking.approved"
	EventBookingRejected = "booking.rejected"
)

// BookingEvent is published on every booking lifecycle change.
type BookingEvent struct {
	BookingID  int64         `json:"bookingId"`
	ItemID     int64         `json:"itemId"`
	OwnerID    int64         `json:"ownerId"`
	BookerID   int64         `json:"bookerId"`
	Status     BookingStatus `json:"status"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	OccurredAt time.Time     `json:"occurredAt"`
}

func NewBookingEvent(b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		BookingID:  b.ID,
		ItemID:     b.ItemID,
		OwnerID:    b.ItemOwnerID,
		BookerID:   b.BookerID,
		Status:     b.Status,
		Start:      b.Start,
		End:        b.End,
		OccurredAt: at,
	}
}

// EventTypeForStatus returns the event emitted when a booking enters status.
func EventTypeForStatus(status BookingStatus) string {
	switch status {
	case StatusApproved:
		return EventBookingApproved
	case StatusRejected:
		return EventBookingRejected
	default:
		return EventBookingCreated
	}
}
