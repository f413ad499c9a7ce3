package persistence

import (
	"context"
	"errors"
	"time"

	"stream-engage/domain/model"
	"stream-engage/domain/repository"
	"stream-engage/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const streamsCollection = "streams"

// StreamRepository implements the streams record store over MongoDB. All
// mutators use update operators on the stored document; the append-only fields
// (tips, announcements) only ever see $push.
type StreamRepository struct {
	db *mongo.Database
}

func NewStreamRepository(client *mongo.Client, dbName string) repository.IStream {
	return &StreamRepository{db: client.Database(dbName)}
}

func (r *StreamRepository) collection() *mongo.Collection {
	return r.db.Collection(streamsCollection)
}

func (r *StreamRepository) Insert(ctx context.Context, stream *model.Stream) error {
	_, err := r.collection().InsertOne(ctx, stream)
	return err
}

func (r *StreamRepository) GetByID(ctx context.Context, streamID string) (*model.Stream, error) {
	var stream model.Stream
	err := r.collection().FindOne(ctx, bson.M{"_id": streamID}).Decode(&stream)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrStreamNotFound
		}
		return nil, err
	}
	return &stream, nil
}

func (r *StreamRepository) Update(ctx context.Context, streamID string, fields map[string]interface{}) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": streamID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrStreamNotFound
	}
	return nil
}

func (r *StreamRepository) PushTip(ctx context.Context, streamID string, tip model.Tip) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": streamID}, bson.M{
		"$push": bson.M{"tips": tip},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrStreamNotFound
	}
	return nil
}

func (r *StreamRepository) PushAnnouncement(ctx context.Context, streamID string, a model.Announcement) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": streamID}, bson.M{
		"$push": bson.M{"announcements": a},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrStreamNotFound
	}
	return nil
}

func (r *StreamRepository) AddCollaborator(ctx context.Context, streamID, userID string) error {
	// $addToSet keeps the insert idempotent under retries.
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": streamID}, bson.M{
		"$addToSet": bson.M{"collaborators": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrStreamNotFound
	}
	return nil
}

func (r *StreamRepository) SetGoalProgress(ctx context.Context, streamID, goalID string, progress float64, achieved bool) error {
	res, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": streamID, "goals.id": goalID},
		bson.M{"$set": bson.M{
			"goals.$.progress": progress,
			"goals.$.achieved": achieved,
			"updated_at":       time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrGoalNotFound
	}
	return nil
}

func (r *StreamRepository) ListByChannel(ctx context.Context, channelID string) ([]model.Stream, error) {
	cursor, err := r.collection().Find(ctx, bson.M{"channel_id": channelID})
	if err != nil {
		return nil, err
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)

	var streams []model.Stream
	for cursor.Next(ctx) {
		var stream model.Stream
		if err := cursor.Decode(&stream); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding stream")
			continue
		}
		streams = append(streams, stream)
	}
	return streams, cursor.Err()
}
