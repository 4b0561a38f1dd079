package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	itemserrors "shareit/internal/items/errors"
	"shareit/pkg/config"
	mongotx "shareit/pkg/db/mongo"
	"shareit/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Items"
	SequenceName   = "items"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id int64) (*model.Item, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*model.Item, error)
	FindByOwner(ctx context.Context, ownerID int64, page model.Page) ([]*model.Item, error)
	FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*model.Item, error)
	Search(ctx context.Context, text string, page model.Page) ([]*model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id int64) error

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoItemRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	sequence   mongotx.SequenceGenerator
	txManager  mongotx.TransactionManager
}

func NewMongoItemRepository(cfg *config.Config) ItemRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoItemRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		sequence:   mongotx.NewSequenceGenerator(db, cfg.WriteTimeout),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoItemRepository) Create(ctx context.Context, item *model.Item) error {
	id, err := r.sequence.Next(ctx, SequenceName)
	if err != nil {
		return err
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	item.ID = id
	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (r *mongoItemRepository) FindByID(ctx context.Context, id int64) (*model.Item, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var item model.Item
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", itemserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return &item, nil
}

func (r *mongoItemRepository) FindByIDs(ctx context.Context, ids []int64) ([]*model.Item, error) {
	if len(ids) == 0 {
		return []*model.Item{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *mongoItemRepository) FindByOwner(ctx context.Context, ownerID int64, page model.Page) ([]*model.Item, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID}, pageOptions(page))
}

func (r *mongoItemRepository) FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*model.Item, error) {
	if len(requestIDs) == 0 {
		return []*model.Item{}, nil
	}
	return r.find(ctx, bson.M{"request_id": bson.M{"$in": requestIDs}}, options.Find())
}

// Search matches available items whose name or description contains text, ignoring case.
func (r *mongoItemRepository) Search(ctx context.Context, text string, page model.Page) ([]*model.Item, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
	filter := bson.M{
		"available": true,
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		},
	}
	return r.find(ctx, filter, pageOptions(page))
}

func pageOptions(page model.Page) *options.FindOptions {
	return options.Find().
		SetSkip(page.From).
		SetLimit(page.Size)
}

func (r *mongoItemRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Item, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts.SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*model.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

func (r *mongoItemRepository) Update(ctx context.Context, item *model.Item) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"description": item.Description,
		"available":   item.Available,
	}}
	result, err := r.collection.UpdateByID(ctx, item.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %d", itemserrors.ErrNotFound, item.ID)
	}
	return nil
}

func (r *mongoItemRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %d", itemserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoItemRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
