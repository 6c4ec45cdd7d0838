package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type CallHistoryRepository struct {
	DB *sql.DB
}

func NewCallHistoryRepository(db *sql.DB) *CallHistoryRepository {
	return &CallHistoryRepository{DB: db}
}

func (r *CallHistoryRepository) Append(ctx context.Context, h *entity.CallHistory) error {
	query := `
		INSERT INTO call_history (call_id, user_id, disposition, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_date
	`

	return r.DB.QueryRowContext(ctx, query,
		h.CallID,
		h.UserID,
		h.Disposition,
		nullString(h.Notes),
	).Scan(&h.ID, &h.CreatedDate)
}

func (r *CallHistoryRepository) ListByCall(ctx context.Context, callID int64) ([]*entity.CallHistory, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, call_id, user_id, disposition, COALESCE(notes, ''), created_date
		FROM call_history
		WHERE call_id = $1
		ORDER BY created_date DESC
	`, callID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*entity.CallHistory
	for rows.Next() {
		var h entity.CallHistory
		if err := rows.Scan(&h.ID, &h.CallID, &h.UserID, &h.Disposition, &h.Notes, &h.CreatedDate); err != nil {
			return nil, err
		}
		history = append(history, &h)
	}
	return history, rows.Err()
}
