package usecase

import (
	"context"
	"time"

	"stream-engage/domain/model"
	"stream-engage/domain/repository"
	"stream-engage/infrastructure/event"
	"stream-engage/infrastructure/logger"
	"stream-engage/infrastructure/realtime"
)

// IEngagementUsecase owns the tip ledger, the derived leaderboard and the
// simple engagement counters. Concurrent tips to one stream must all land:
// every mutation goes through an atomic store operator, never a read of the
// aggregate followed by a write-back.
type IEngagementUsecase interface {
	RegisterTip(ctx context.Context, streamID, userID string, amount float64, message, giftID string) (*model.Tip, error)
	GetLeaderboard(ctx context.Context, streamID string, limit int) ([]model.LeaderboardEntry, error)
	IncrementLike(ctx context.Context, streamID string) error
	LogToyAction(ctx context.Context, streamID string, data map[string]interface{}) error
	GetStats(ctx context.Context, streamID string) (*model.StatsRecord, error)
	WithBroadcaster(fn func(realtime.EngagementEvent)) IEngagementUsecase
}

type engagementUsecase struct {
	streamRepo repository.IStream
	statsRepo  repository.IStats
	sink       event.IEventSink
	broadcast  func(realtime.EngagementEvent)
}

func NewEngagementUsecase(
	streamRepo repository.IStream,
	statsRepo repository.IStats,
	sink event.IEventSink,
) IEngagementUsecase {
	return &engagementUsecase{streamRepo: streamRepo, statsRepo: statsRepo, sink: sink}
}

// WithBroadcaster attaches a fan-out callback for live tip events.
func (u *engagementUsecase) WithBroadcaster(fn func(realtime.EngagementEvent)) IEngagementUsecase {
	u.broadcast = fn
	return u
}

func (u *engagementUsecase) RegisterTip(ctx context.Context, streamID, userID string, amount float64, message, giftID string) (*model.Tip, error) {
	if userID == "" {
		return nil, model.NewValidationError("user_id", "required")
	}
	if amount <= 0 {
		return nil, model.NewValidationError("amount", "must be positive")
	}
	if _, err := u.streamRepo.GetByID(ctx, streamID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tip := model.Tip{
		UserID:    userID,
		Amount:    amount,
		Message:   message,
		GiftID:    giftID,
		Timestamp: now,
	}

	if err := u.streamRepo.PushTip(ctx, streamID, tip); err != nil {
		return nil, err
	}
	// Create-if-absent pins the user's first-tip timestamp; the increment then
	// commutes with concurrent tips for the same stream.
	if err := u.statsRepo.EnsureTipBoardEntry(ctx, streamID, userID, now); err != nil {
		return nil, err
	}
	if err := u.statsRepo.ApplyTip(ctx, streamID, userID, amount); err != nil {
		return nil, err
	}

	// highest_tipper is derived; recompute from the post-increment board. A
	// concurrent tip may leave it momentarily stale, but every recomputation is
	// deterministic, so the last writer converges it.
	stats, err := u.statsRepo.GetByStreamID(ctx, streamID)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("stream_id", streamID).Warn("tip board read failed after tip")
	} else if top := stats.TopTipper(); top != "" {
		if err := u.statsRepo.SetHighestTipper(ctx, streamID, top); err != nil {
			logger.GetLogger().WithField("error", err).WithField("stream_id", streamID).Warn("highest_tipper update failed")
		}
	}

	u.sink.Emit("tip.registered", map[string]interface{}{
		"stream_id": streamID, "user_id": userID, "amount": amount, "gift_id": giftID,
	})
	if u.broadcast != nil {
		u.broadcast(realtime.EngagementEvent{Type: "tip", StreamID: streamID, UserID: userID, Data: tip})
	}
	return &tip, nil
}

func (u *engagementUsecase) GetLeaderboard(ctx context.Context, streamID string, limit int) ([]model.LeaderboardEntry, error) {
	stats, err := u.statsRepo.GetByStreamID(ctx, streamID)
	if err != nil {
		return nil, err
	}
	return stats.Leaderboard(limit), nil
}

func (u *engagementUsecase) IncrementLike(ctx context.Context, streamID string) error {
	if err := u.statsRepo.IncrementField(ctx, streamID, "likes", 1); err != nil {
		return err
	}
	if u.broadcast != nil {
		u.broadcast(realtime.EngagementEvent{Type: "like", StreamID: streamID})
	}
	return nil
}

func (u *engagementUsecase) LogToyAction(ctx context.Context, streamID string, data map[string]interface{}) error {
	action := model.ToyAction{Data: data, Timestamp: time.Now().UTC()}
	return u.statsRepo.AppendToyAction(ctx, streamID, action)
}

func (u *engagementUsecase) GetStats(ctx context.Context, streamID string) (*model.StatsRecord, error) {
	return u.statsRepo.GetByStreamID(ctx, streamID)
}
