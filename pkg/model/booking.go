package model

import (
	"time"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

func (s BookingStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Booking struct {
	ID          int64         `json:"id" bson:"_id"`
	Start       time.Time     `json:"start" bson:"start"`
	End         time.Time     `json:"end" bson:"end"`
	ItemID      int64         `json:"itemId" bson:"item_id"`
	ItemOwnerID int64         `json:"-" bson:"item_owner_id"`
	BookerID    int64         `json:"bookerId" bson:"booker_id"`
	Status      BookingStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"-" bson:"created_at"`
}

type BookingCreate struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  Timestamp `json:"start" validate:"required"`
	End    Timestamp `json:"end" validate:"required"`
}

// BookingView is a booking with its booker and item resolved.
type BookingView struct {
	ID     int64         `json:"id"`
	Start  Timestamp     `json:"start"`
	End    Timestamp     `json:"end"`
	Status BookingStatus `json:"status"`
	Booker *UserShort    `json:"booker"`
	Item   *ItemShort    `json:"item"`
}

// BookingShort is the last/next booking shortcut shown to item owners.
type BookingShort struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    Timestamp `json:"start"`
	End      Timestamp `json:"end"`
}

func NewBookingShort(b *Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    NewTimestamp(b.Start),
		End:      NewTimestamp(b.End),
	}
}
