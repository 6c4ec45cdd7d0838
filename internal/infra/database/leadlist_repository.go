package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type LeadListRepository struct {
	DB *sql.DB
}

func NewLeadListRepository(db *sql.DB) *LeadListRepository {
	return &LeadListRepository{DB: db}
}

func (r *LeadListRepository) Create(ctx context.Context, l *entity.LeadList) error {
	query := `
		INSERT INTO lead_lists (name, type, description, category, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_date
	`

	return r.DB.QueryRowContext(ctx, query,
		l.Name,
		l.Type,
		nullString(l.Description),
		nullString(l.Category),
		l.UploadedBy,
	).Scan(&l.ID, &l.CreatedDate)
}

func (r *LeadListRepository) FindByID(ctx context.Context, id int64) (*entity.LeadList, error) {
	query := `
		SELECT id, name, type, COALESCE(description, ''), COALESCE(category, ''),
		       uploaded_by, created_date
		FROM lead_lists
		WHERE id = $1
	`

	var l entity.LeadList
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.Type, &l.Description, &l.Category,
		&l.UploadedBy, &l.CreatedDate,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrLeadListNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeadListRepository) List(ctx context.Context) ([]*entity.LeadList, error) {
	query := `
		SELECT id, name, type, COALESCE(description, ''), COALESCE(category, ''),
		       uploaded_by, created_date
		FROM lead_lists
		ORDER BY created_date DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*entity.LeadList
	for rows.Next() {
		var l entity.LeadList
		if err := rows.Scan(&l.ID, &l.Name, &l.Type, &l.Description, &l.Category,
			&l.UploadedBy, &l.CreatedDate); err != nil {
			return nil, err
		}
		lists = append(lists, &l)
	}
	return lists, rows.Err()
}

// Delete remove a lista com tudo que pende dela: contadores, histórico,
// comunicações e os próprios calls.
func (r *LeadListRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	cascade := []string{
		`DELETE FROM disposition_counts WHERE call_id IN (SELECT id FROM calls WHERE database_id = $1)`,
		`DELETE FROM call_history WHERE call_id IN (SELECT id FROM calls WHERE database_id = $1)`,
		`DELETE FROM communications WHERE call_id IN (SELECT id FROM calls WHERE database_id = $1)`,
		`DELETE FROM calls WHERE database_id = $1`,
	}
	for _, q := range cascade {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM lead_lists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrLeadListNotFound
	}

	return tx.Commit()
}

func (r *LeadListRepository) ListCalls(ctx context.Context, listID int64) ([]*entity.Call, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM calls WHERE database_id = $1 ORDER BY created_date DESC`,
		callColumns,
	)

	rows, err := r.DB.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []*entity.Call
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}
