package database

import (
	"context"
	"database/sql"
)

// DispositionCountRepository guarda o contador de repetição por
// (call, rótulo). O reset em avanço de estágio apaga todas as linhas do call.
type DispositionCountRepository struct {
	DB *sql.DB
}

func NewDispositionCountRepository(db *sql.DB) *DispositionCountRepository {
	return &DispositionCountRepository{DB: db}
}

func (r *DispositionCountRepository) Increment(ctx context.Context, callID int64, disposition string) (int, error) {
	query := `
		INSERT INTO disposition_counts (call_id, disposition, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (call_id, disposition)
		DO UPDATE SET count = disposition_counts.count + 1, updated_date = NOW()
		RETURNING count
	`

	var count int
	err := r.DB.QueryRowContext(ctx, query, callID, disposition).Scan(&count)
	return count, err
}

func (r *DispositionCountRepository) CountsFor(ctx context.Context, callID int64) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT disposition, count FROM disposition_counts WHERE call_id = $1`,
		callID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var disposition string
		var count int
		if err := rows.Scan(&disposition, &count); err != nil {
			return nil, err
		}
		counts[disposition] = count
	}
	return counts, rows.Err()
}

func (r *DispositionCountRepository) ResetFor(ctx context.Context, callID int64) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM disposition_counts WHERE call_id = $1`, callID)
	return err
}
