package persistence

import (
	"context"
	"errors"
	"time"

	"stream-engage/domain/model"
	"stream-engage/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const statsCollection = "stats"

// StatsRepository implements the engagement aggregate store over MongoDB.
// Counters and tip board totals are mutated with $inc/$max and a filtered
// create-if-absent, so concurrent tips to the same stream commute instead of
// racing a whole-record write-back.
type StatsRepository struct {
	db *mongo.Database
}

func NewStatsRepository(client *mongo.Client, dbName string) repository.IStats {
	return &StatsRepository{db: client.Database(dbName)}
}

func (r *StatsRepository) collection() *mongo.Collection {
	return r.db.Collection(statsCollection)
}

func (r *StatsRepository) Insert(ctx context.Context, stats *model.StatsRecord) error {
	_, err := r.collection().InsertOne(ctx, stats)
	return err
}

func (r *StatsRepository) GetByStreamID(ctx context.Context, streamID string) (*model.StatsRecord, error) {
	var stats model.StatsRecord
	err := r.collection().FindOne(ctx, bson.M{"_id": streamID}).Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrStatsNotFound
		}
		return nil, err
	}
	if stats.TipBoard == nil {
		stats.TipBoard = map[string]model.TipBoardEntry{}
	}
	return &stats, nil
}

func (r *StatsRepository) IncrementField(ctx context.Context, streamID, field string, delta int64) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": streamID}, bson.M{
		"$inc": bson.M{field: delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrStatsNotFound
	}
	return nil
}

func (r *StatsRepository) EnsureTipBoardEntry(ctx context.Context, streamID, userID string, firstTipAt time.Time) error {
	// The $exists filter makes this write atomic create-if-absent: with
	// concurrent first tips exactly one matches, and the losing caller's
	// timestamp is discarded, so first_tip_at never changes afterwards.
	_, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": streamID, "tip_board." + userID: bson.M{"$exists": false}},
		bson.M{"$set": bson.M{
			"tip_board." + userID: model.TipBoardEntry{Total: 0, FirstTipAt: firstTipAt},
		}},
	)
	return err
}

func (r *StatsRepository) ApplyTip(ctx context.Context, streamID, userID string, amount float64) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": streamID}, bson.M{
		"$inc": bson.M{
			"tips_total":                    amount,
			"tip_board." + userID + ".total": amount,
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrStatsNotFound
	}
	return nil
}

func (r *StatsRepository) SetHighestTipper(ctx context.Context, streamID, userID string) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": streamID}, bson.M{
		"$set": bson.M{"highest_tipper": userID, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrStatsNotFound
	}
	return nil
}

func (r *StatsRepository) AppendToyAction(ctx context.Context, streamID string, action model.ToyAction) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": streamID}, bson.M{
		"$push": bson.M{"toys_log": action},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrStatsNotFound
	}
	return nil
}

func (r *StatsRepository) RaiseConcurrentMax(ctx context.Context, streamID string, current int64) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": streamID}, bson.M{
		"$max": bson.M{"concurrent_max": current},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrStatsNotFound
	}
	return nil
}
