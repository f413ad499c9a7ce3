package model

import (
	"sort"
	"time"
)

// TipBoardEntry is one user's cumulative tip total for a stream. FirstTipAt is
// recorded on the user's first tip and never changes afterwards; it breaks ties
// on the leaderboard so ordering does not depend on arrival interleaving.
type TipBoardEntry struct {
	Total      float64   `json:"total" bson:"total"`
	FirstTipAt time.Time `json:"first_tip_at" bson:"first_tip_at"`
}

type ToyAction struct {
	Data      map[string]interface{} `json:"data" bson:"data"`
	Timestamp time.Time              `json:"timestamp" bson:"timestamp"`
}

// StatsRecord is the 1:1 engagement aggregate for a Stream, keyed by stream id.
// Counters and tip board totals are only ever mutated through atomic store
// operators, never by writing the whole record back.
type StatsRecord struct {
	StreamID      string                   `json:"stream_id" bson:"_id"`
	Likes         int64                    `json:"likes" bson:"likes"`
	Views         int64                    `json:"views" bson:"views"`
	JoinCount     int64                    `json:"join_count" bson:"join_count"`
	LeaveCount    int64                    `json:"leave_count" bson:"leave_count"`
	ConcurrentMax int64                    `json:"concurrent_max" bson:"concurrent_max"`
	TipsTotal     float64                  `json:"tips_total" bson:"tips_total"`
	TipBoard      map[string]TipBoardEntry `json:"tip_board" bson:"tip_board"`
	HighestTipper string                   `json:"highest_tipper,omitempty" bson:"highest_tipper,omitempty"`
	ToysLog       []ToyAction              `json:"toys_log" bson:"toys_log"`
	UpdatedAt     time.Time                `json:"updated_at" bson:"updated_at"`
}

func NewStatsRecord(streamID string, now time.Time) *StatsRecord {
	return &StatsRecord{
		StreamID:  streamID,
		TipBoard:  map[string]TipBoardEntry{},
		ToysLog:   []ToyAction{},
		UpdatedAt: now,
	}
}

// LeaderboardEntry is a tip board entry flattened for output.
type LeaderboardEntry struct {
	UserID     string    `json:"user_id"`
	Total      float64   `json:"total"`
	FirstTipAt time.Time `json:"first_tip_at"`
}

// Leaderboard returns the tip board sorted descending by total, ties broken by
// earliest first-tip timestamp, then by user id so the order is fully
// deterministic. A limit <= 0 means no truncation.
func (s *StatsRecord) Leaderboard(limit int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(s.TipBoard))
	for userID, e := range s.TipBoard {
		entries = append(entries, LeaderboardEntry{UserID: userID, Total: e.Total, FirstTipAt: e.FirstTipAt})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		if !entries[i].FirstTipAt.Equal(entries[j].FirstTipAt) {
			return entries[i].FirstTipAt.Before(entries[j].FirstTipAt)
		}
		return entries[i].UserID < entries[j].UserID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// TopTipper returns the user id that should hold highest_tipper, or "" when the
// board is empty.
func (s *StatsRecord) TopTipper() string {
	board := s.Leaderboard(1)
	if len(board) == 0 {
		return ""
	}
	return board[0].UserID
}
