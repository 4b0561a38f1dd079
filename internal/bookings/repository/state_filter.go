package repository

import (
	"fmt"
	"time"

	bookingserrors "shareit/internal/bookings/errors"
	"shareit/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// stateFilter translates a listing state into a query relative to now.
func stateFilter(state model.BookingState, now time.Time) (bson.M, error) {
	switch state {
	case model.StateAll:
		return bson.M{}, nil
	case model.StateCurrent:
		return bson.M{
			"start": bson.M{"$lte": now},
			"end":   bson.M{"$gte": now},
		}, nil
	case model.StatePast:
		return bson.M{"end": bson.M{"$lt": now}}, nil
	case model.StateFuture:
		return bson.M{"start": bson.M{"$gt": now}}, nil
	case model.StateWaiting:
		return bson.M{"status": model.StatusWaiting}, nil
	case model.StateRejected:
		return bson.M{"status": model.StatusRejected}, nil
	default:
		return nil, fmt.Errorf("%w: %d", bookingserrors.ErrUnsupportedState, state)
	}
}

// listOptions orders listings newest start first, breaking ties by id, and
// applies the page window.
func listOptions(page model.Page) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "start", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(page.From).
		SetLimit(page.Size)
}
