package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "shareit/internal/bookings/errors"
	"shareit/pkg/config"
	mongotx "shareit/pkg/db/mongo"
	"shareit/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
	SequenceName   = "bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	FindByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, page model.Page) ([]*model.Booking, error)
	FindByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, page model.Page) ([]*model.Booking, error)
	FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*model.Booking, error)
	ExistsByItemID(ctx context.Context, itemID int64) (bool, error)
	ExistsCompleted(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	sequence   mongotx.SequenceGenerator
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		sequence:   mongotx.NewSequenceGenerator(db, cfg.WriteTimeout),
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	id, err := r.sequence.Next(ctx, SequenceName)
	if err != nil {
		return err
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.ID = id
	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var booking model.Booking
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", bookingserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) FindByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, page model.Page) ([]*model.Booking, error) {
	return r.findByState(ctx, "booker_id", bookerID, state, now, page)
}

func (r *mongoBookingRepository) FindByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, page model.Page) ([]*model.Booking, error) {
	return r.findByState(ctx, "item_owner_id", ownerID, state, now, page)
}

func (r *mongoBookingRepository) findByState(ctx context.Context, field string, userID int64, state model.BookingState, now time.Time, page model.Page) ([]*model.Booking, error) {
	filter, err := stateFilter(state, now)
	if err != nil {
		return nil, err
	}
	filter[field] = userID
	return r.find(ctx, filter, listOptions(page))
}

func (r *mongoBookingRepository) FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*model.Booking, error) {
	if len(itemIDs) == 0 {
		return []*model.Booking{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, bson.M{"item_id": bson.M{"$in": itemIDs}}, opts)
}

func (r *mongoBookingRepository) ExistsByItemID(ctx context.Context, itemID int64) (bool, error) {
	return r.exists(ctx, bson.M{"item_id": itemID})
}

// ExistsCompleted reports whether bookerID has a booking of itemID that ended before now.
func (r *mongoBookingRepository) ExistsCompleted(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	return r.exists(ctx, bson.M{
		"item_id":   itemID,
		"booker_id": bookerID,
		"end":       bson.M{"$lt": now},
	})
}

func (r *mongoBookingRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count > 0, nil
}

// UpdateStatus moves a WAITING booking to status. A booking that already left
// WAITING is reported as ErrStatusConflict, a missing one as ErrNotFound.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": model.StatusWaiting},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to check booking existence: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %d", bookingserrors.ErrNotFound, id)
	}
	return fmt.Errorf("%w: %d", bookingserrors.ErrStatusConflict, id)
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
