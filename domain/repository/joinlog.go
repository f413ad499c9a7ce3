package repository

import (
	"context"
	"time"

	"stream-engage/domain/model"
)

// IJoinLog is the audit trail for viewer joins and leaves. The trail is
// append/close-only; closing always targets the most recently opened unclosed
// entry for the (stream, user) pair.
type IJoinLog interface {
	Insert(ctx context.Context, entry *model.JoinLogEntry) error
	// FindOpen returns the newest entry with a null left_at for the pair, or
	// (nil, nil) when there is none.
	FindOpen(ctx context.Context, streamID, userID string) (*model.JoinLogEntry, error)
	// CloseLatest sets left_at on the newest open entry for the pair. Returns
	// false when no open entry existed; that is not an error.
	CloseLatest(ctx context.Context, streamID, userID string, leftAt time.Time) (bool, error)
	ListByStream(ctx context.Context, streamID string) ([]model.JoinLogEntry, error)
}
