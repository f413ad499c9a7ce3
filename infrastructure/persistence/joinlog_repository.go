package persistence

import (
	"context"
	"errors"
	"time"

	"stream-engage/domain/model"
	"stream-engage/domain/repository"

	"gorm.io/gorm"
)

// JoinLogRepository implements the join/leave audit trail over gorm (MySQL).
type JoinLogRepository struct {
	db *gorm.DB
}

func NewJoinLogRepository(db *gorm.DB) repository.IJoinLog {
	return &JoinLogRepository{db: db}
}

func (r *JoinLogRepository) Insert(ctx context.Context, entry *model.JoinLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *JoinLogRepository) FindOpen(ctx context.Context, streamID, userID string) (*model.JoinLogEntry, error) {
	var entry model.JoinLogEntry
	err := r.db.WithContext(ctx).
		Where("stream_id = ? AND user_id = ? AND left_at IS NULL", streamID, userID).
		Order("joined_at DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *JoinLogRepository) CloseLatest(ctx context.Context, streamID, userID string, leftAt time.Time) (bool, error) {
	open, err := r.FindOpen(ctx, streamID, userID)
	if err != nil {
		return false, err
	}
	if open == nil {
		return false, nil
	}
	// Guard on left_at IS NULL so a concurrent close of the same entry wins
	// exactly once.
	res := r.db.WithContext(ctx).
		Model(&model.JoinLogEntry{}).
		Where("id = ? AND left_at IS NULL", open.ID).
		Update("left_at", leftAt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *JoinLogRepository) ListByStream(ctx context.Context, streamID string) ([]model.JoinLogEntry, error) {
	var entries []model.JoinLogEntry
	err := r.db.WithContext(ctx).
		Where("stream_id = ?", streamID).
		Order("joined_at ASC").
		Find(&entries).Error
	return entries, err
}
