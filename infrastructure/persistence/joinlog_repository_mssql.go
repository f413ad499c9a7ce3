package persistence

import (
	"context"
	"database/sql"
	"time"

	"stream-engage/domain/model"
	"stream-engage/domain/repository"
)

// JoinLogRepositoryMSSQL is the production (Azure SQL) variant of the join-log
// audit trail, on native database/sql.
type JoinLogRepositoryMSSQL struct {
	db *sql.DB
}

func NewJoinLogRepositoryMSSQL(db *sql.DB) repository.IJoinLog {
	return &JoinLogRepositoryMSSQL{db: db}
}

func (r *JoinLogRepositoryMSSQL) Insert(ctx context.Context, entry *model.JoinLogEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO join_logs (id, stream_id, user_id, role, joined_at, left_at) VALUES (@p1, @p2, @p3, @p4, @p5, NULL)`,
		entry.ID, entry.StreamID, entry.UserID, string(entry.Role), entry.JoinedAt)
	return err
}

func (r *JoinLogRepositoryMSSQL) FindOpen(ctx context.Context, streamID, userID string) (*model.JoinLogEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT TOP 1 id, stream_id, user_id, role, joined_at FROM join_logs
		 WHERE stream_id = @p1 AND user_id = @p2 AND left_at IS NULL
		 ORDER BY joined_at DESC`,
		streamID, userID)

	entry := &model.JoinLogEntry{}
	var role string
	if err := row.Scan(&entry.ID, &entry.StreamID, &entry.UserID, &role, &entry.JoinedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	entry.Role = model.ParticipantRole(role)
	return entry, nil
}

func (r *JoinLogRepositoryMSSQL) CloseLatest(ctx context.Context, streamID, userID string, leftAt time.Time) (bool, error) {
	// Single statement: close the newest open entry for the pair, if any.
	res, err := r.db.ExecContext(ctx,
		`UPDATE join_logs SET left_at = @p1
		 WHERE id = (SELECT TOP 1 id FROM join_logs
		             WHERE stream_id = @p2 AND user_id = @p3 AND left_at IS NULL
		             ORDER BY joined_at DESC)`,
		leftAt, streamID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *JoinLogRepositoryMSSQL) ListByStream(ctx context.Context, streamID string) ([]model.JoinLogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, stream_id, user_id, role, joined_at, left_at FROM join_logs
		 WHERE stream_id = @p1 ORDER BY joined_at ASC`,
		streamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.JoinLogEntry
	for rows.Next() {
		var entry model.JoinLogEntry
		var role string
		var leftAt sql.NullTime
		if err := rows.Scan(&entry.ID, &entry.StreamID, &entry.UserID, &role, &entry.JoinedAt, &leftAt); err != nil {
			return nil, err
		}
		entry.Role = model.ParticipantRole(role)
		if leftAt.Valid {
			t := leftAt.Time
			entry.LeftAt = &t
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
