package persistence

import (
	"context"
	"errors"

	"stream-engage/domain/model"
	"stream-engage/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const channelsCollection = "channels"

// ChannelRepository stores the channel profile mirror in MongoDB.
type ChannelRepository struct {
	db *mongo.Database
}

func NewChannelRepository(client *mongo.Client, dbName string) repository.IChannel {
	return &ChannelRepository{db: client.Database(dbName)}
}

func (r *ChannelRepository) collection() *mongo.Collection {
	return r.db.Collection(channelsCollection)
}

func (r *ChannelRepository) Upsert(ctx context.Context, profile *model.ChannelProfile) error {
	_, err := r.collection().ReplaceOne(ctx,
		bson.M{"_id": profile.ID},
		profile,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *ChannelRepository) GetByID(ctx context.Context, channelID string) (*model.ChannelProfile, error) {
	var profile model.ChannelProfile
	err := r.collection().FindOne(ctx, bson.M{"_id": channelID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrChannelNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ChannelRepository) Update(ctx context.Context, channelID string, fields map[string]interface{}) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": channelID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrChannelNotFound
	}
	return nil
}
