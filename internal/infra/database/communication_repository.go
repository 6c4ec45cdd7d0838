package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type CommunicationRepository struct {
	DB *sql.DB
}

func NewCommunicationRepository(db *sql.DB) *CommunicationRepository {
	return &CommunicationRepository{DB: db}
}

func (r *CommunicationRepository) Log(ctx context.Context, c *entity.Communication) error {
	if c.Status == "" {
		c.Status = "sent"
	}

	query := `
		INSERT INTO communications (call_id, user_id, type, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_date
	`

	return r.DB.QueryRowContext(ctx, query,
		c.CallID,
		c.UserID,
		c.Type,
		nullString(c.Subject),
		c.Message,
		c.Status,
	).Scan(&c.ID, &c.CreatedDate)
}
