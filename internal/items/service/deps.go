package service

import (
	"context"
	"time"

	"shareit/pkg/model"
)

// UserReader resolves owners and comment authors.
type UserReader interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*model.User, error)
}

// BookingReader is the part of the booking store items depend on.
type BookingReader interface {
	FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*model.Booking, error)
	ExistsByItemID(ctx context.Context, itemID int64) (bool, error)
	ExistsCompleted(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type RequestReader interface {
	FindByID(ctx context.Context, id int64) (*model.Request, error)
}
