package usecase

import (
	"context"
	"time"

	"stream-engage/domain/model"
	"stream-engage/domain/repository"
	"stream-engage/infrastructure/event"
	"stream-engage/infrastructure/logger"
	"stream-engage/infrastructure/realtime"

	"github.com/google/uuid"
)

// IPresenceUsecase tracks who is currently watching a stream. The Redis set is
// the source of truth for live membership; the join log is the durable audit
// trail. Join and Leave are idempotent so at-least-once delivery of client
// events is safe.
type IPresenceUsecase interface {
	Join(ctx context.Context, streamID, userID string, role model.ParticipantRole) error
	Leave(ctx context.Context, streamID, userID string) error
	ListActive(ctx context.Context, streamID string) ([]string, error)
	ActiveCount(ctx context.Context, streamID string) (int64, error)
	WithBroadcaster(fn func(realtime.EngagementEvent)) IPresenceUsecase
}

type presenceUsecase struct {
	streamRepo  repository.IStream
	joinLogRepo repository.IJoinLog
	statsRepo   repository.IStats
	presence    repository.IPresence
	sink        event.IEventSink
	broadcast   func(realtime.EngagementEvent)
}

func NewPresenceUsecase(
	streamRepo repository.IStream,
	joinLogRepo repository.IJoinLog,
	statsRepo repository.IStats,
	presence repository.IPresence,
	sink event.IEventSink,
) IPresenceUsecase {
	return &presenceUsecase{
		streamRepo:  streamRepo,
		joinLogRepo: joinLogRepo,
		statsRepo:   statsRepo,
		presence:    presence,
		sink:        sink,
	}
}

// WithBroadcaster attaches a fan-out callback for live viewer events.
func (u *presenceUsecase) WithBroadcaster(fn func(realtime.EngagementEvent)) IPresenceUsecase {
	u.broadcast = fn
	return u
}

func (u *presenceUsecase) Join(ctx context.Context, streamID, userID string, role model.ParticipantRole) error {
	if userID == "" {
		return model.NewValidationError("user_id", "required")
	}
	if role == "" {
		role = model.RoleViewer
	}
	if !role.Valid() {
		return model.NewValidationError("role", "unknown role "+string(role))
	}
	if _, err := u.streamRepo.GetByID(ctx, streamID); err != nil {
		return err
	}

	key := repository.ActiveViewersKey(streamID)
	if err := u.presence.AddMember(ctx, key, userID); err != nil {
		return err
	}

	open, err := u.joinLogRepo.FindOpen(ctx, streamID, userID)
	if err != nil {
		return err
	}
	// Re-joining while an entry is still open appends nothing; the set add
	// above was already a no-op.
	if open == nil {
		entry := &model.JoinLogEntry{
			ID:       uuid.NewString(),
			StreamID: streamID,
			UserID:   userID,
			Role:     role,
			JoinedAt: time.Now().UTC(),
		}
		if err := u.joinLogRepo.Insert(ctx, entry); err != nil {
			return err
		}
		if err := u.statsRepo.IncrementField(ctx, streamID, "join_count", 1); err != nil {
			logger.GetLogger().WithField("error", err).WithField("stream_id", streamID).Warn("join_count increment failed")
		}
		if err := u.statsRepo.IncrementField(ctx, streamID, "views", 1); err != nil {
			logger.GetLogger().WithField("error", err).WithField("stream_id", streamID).Warn("views increment failed")
		}
	}

	if count, err := u.presence.CountMembers(ctx, key); err == nil {
		if err := u.statsRepo.RaiseConcurrentMax(ctx, streamID, count); err != nil {
			logger.GetLogger().WithField("error", err).WithField("stream_id", streamID).Warn("concurrent_max update failed")
		}
	}

	u.sink.Emit("stream.joined", map[string]interface{}{
		"stream_id": streamID, "user_id": userID, "role": string(role),
	})
	if u.broadcast != nil {
		u.broadcast(realtime.EngagementEvent{Type: "joined", StreamID: streamID, UserID: userID})
	}
	return nil
}

func (u *presenceUsecase) Leave(ctx context.Context, streamID, userID string) error {
	if userID == "" {
		return model.NewValidationError("user_id", "required")
	}

	if err := u.presence.RemoveMember(ctx, repository.ActiveViewersKey(streamID), userID); err != nil {
		return err
	}

	closed, err := u.joinLogRepo.CloseLatest(ctx, streamID, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	// Leaving with no open entry is a no-op, never an error.
	if closed {
		if err := u.statsRepo.IncrementField(ctx, streamID, "leave_count", 1); err != nil {
			logger.GetLogger().WithField("error", err).WithField("stream_id", streamID).Warn("leave_count increment failed")
		}
	}

	u.sink.Emit("stream.left", map[string]interface{}{
		"stream_id": streamID, "user_id": userID,
	})
	if u.broadcast != nil {
		u.broadcast(realtime.EngagementEvent{Type: "left", StreamID: streamID, UserID: userID})
	}
	return nil
}

func (u *presenceUsecase) ListActive(ctx context.Context, streamID string) ([]string, error) {
	return u.presence.ListMembers(ctx, repository.ActiveViewersKey(streamID))
}

func (u *presenceUsecase) ActiveCount(ctx context.Context, streamID string) (int64, error) {
	return u.presence.CountMembers(ctx, repository.ActiveViewersKey(streamID))
}
