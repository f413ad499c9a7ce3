package repository

import (
	"context"
	"time"

	"stream-engage/domain/model"
)

// IStats is the store boundary for the per-stream engagement aggregate. Every
// mutator maps to an atomic operator keyed by stream id so concurrent writers
// for the same stream cannot lose updates.
type IStats interface {
	Insert(ctx context.Context, stats *model.StatsRecord) error
	GetByStreamID(ctx context.Context, streamID string) (*model.StatsRecord, error)
	// IncrementField atomically adds delta to a counter field.
	IncrementField(ctx context.Context, streamID, field string, delta int64) error
	// EnsureTipBoardEntry creates the user's tip board entry with a zero total
	// and the given first-tip timestamp, only when the entry is absent. The
	// filtered write makes concurrent creation race-free: exactly one caller's
	// timestamp sticks.
	EnsureTipBoardEntry(ctx context.Context, streamID, userID string, firstTipAt time.Time) error
	// ApplyTip atomically increments tips_total and the user's board total.
	ApplyTip(ctx context.Context, streamID, userID string, amount float64) error
	SetHighestTipper(ctx context.Context, streamID, userID string) error
	AppendToyAction(ctx context.Context, streamID string, action model.ToyAction) error
	// RaiseConcurrentMax lifts concurrent_max to current when it is higher.
	RaiseConcurrentMax(ctx context.Context, streamID string, current int64) error
}
