package service

import (
	"context"

	"shareit/pkg/model"
)

type UserReader interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// ItemReader finds the items created in answer to requests.
type ItemReader interface {
	FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*model.Item, error)
}
