package model

import "time"

type ParticipantRole string

const (
	RoleViewer       ParticipantRole = "viewer"
	RoleCollaborator ParticipantRole = "collaborator"
	RoleModerator    ParticipantRole = "moderator"
	RoleOwner        ParticipantRole = "owner"
)

func (r ParticipantRole) Valid() bool {
	switch r {
	case RoleViewer, RoleCollaborator, RoleModerator, RoleOwner:
		return true
	}
	return false
}

// JoinLogEntry is one row of the join/leave audit trail. For a given
// (stream_id, user_id) pair at most one entry has a null left_at.
type JoinLogEntry struct {
	ID       string          `json:"id" gorm:"primaryKey;size:36"`
	StreamID string          `json:"stream_id" gorm:"size:36;index:idx_join_logs_stream_user"`
	UserID   string          `json:"user_id" gorm:"size:64;index:idx_join_logs_stream_user"`
	Role     ParticipantRole `json:"role" gorm:"size:16"`
	JoinedAt time.Time       `json:"joined_at" gorm:"index"`
	LeftAt   *time.Time      `json:"left_at,omitempty"`
}

func (JoinLogEntry) TableName() string { return "join_logs" }
