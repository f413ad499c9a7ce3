package repository

import (
	"context"

	"stream-engage/domain/model"
)

// IStream is the durable record store boundary for the streams collection.
// Mutators operate with atomic update operators on the stored document; none of
// them read-modify-write the whole record.
type IStream interface {
	Insert(ctx context.Context, stream *model.Stream) error
	GetByID(ctx context.Context, streamID string) (*model.Stream, error)
	// Update applies a partial $set-style update. Callers must include updated_at.
	Update(ctx context.Context, streamID string, fields map[string]interface{}) error
	// PushTip appends to the append-only tip sequence.
	PushTip(ctx context.Context, streamID string, tip model.Tip) error
	PushAnnouncement(ctx context.Context, streamID string, a model.Announcement) error
	// AddCollaborator is a set insert; adding an existing member is a no-op.
	AddCollaborator(ctx context.Context, streamID, userID string) error
	// SetGoalProgress updates one goal in place, leaving the others untouched.
	// Returns model.ErrGoalNotFound when no goal matches.
	SetGoalProgress(ctx context.Context, streamID, goalID string, progress float64, achieved bool) error
	ListByChannel(ctx context.Context, channelID string) ([]model.Stream, error)
}
