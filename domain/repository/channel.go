package repository

import (
	"context"

	"stream-engage/domain/model"
)

// IChannel stores the read-mostly channel profile mirror.
type IChannel interface {
	Upsert(ctx context.Context, profile *model.ChannelProfile) error
	GetByID(ctx context.Context, channelID string) (*model.ChannelProfile, error)
	Update(ctx context.Context, channelID string, fields map[string]interface{}) error
}
