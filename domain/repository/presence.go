package repository

import "context"

// Set keys used with the presence store.
const ActiveStreamsKey = "active_streams"

func ActiveViewersKey(streamID string) string {
	return "stream:" + streamID + ":active"
}

// IPresence is the ephemeral set store. Every call is atomic on the store side;
// no client-side locking is layered on top.
type IPresence interface {
	AddMember(ctx context.Context, key, member string) error
	RemoveMember(ctx context.Context, key, member string) error
	ListMembers(ctx context.Context, key string) ([]string, error)
	CountMembers(ctx context.Context, key string) (int64, error)
}
