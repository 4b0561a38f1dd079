package service

import (
	"context"

	"shareit/pkg/model"
)

type UserReader interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*model.User, error)
}

type ItemReader interface {
	FindByID(ctx context.Context, id int64) (*model.Item, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*model.Item, error)
}
