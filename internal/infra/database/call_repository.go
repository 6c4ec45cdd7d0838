package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type CallRepository struct {
	DB *sql.DB
}

func NewCallRepository(db *sql.DB) *CallRepository {
	return &CallRepository{DB: db}
}

const callColumns = `
	id, call_id, type, client_name, department, city,
	company_name, contact_person, designation,
	phone_number, email, database_id, assigned_to,
	status, disposition, notes,
	called_date, follow_up_date, demo_date, proposal_date, negotiation_date,
	reminder_sent, created_date
`

func scanCall(row interface{ Scan(...any) error }) (*entity.Call, error) {
	var c entity.Call
	var clientName, department, city sql.NullString
	var companyName, contactPerson, designation sql.NullString
	var email, disposition, notes sql.NullString
	var assignedTo sql.NullInt64
	var calledDate, followUpDate, demoDate, proposalDate, negotiationDate sql.NullTime

	err := row.Scan(
		&c.ID, &c.CallID, &c.Type, &clientName, &department, &city,
		&companyName, &contactPerson, &designation,
		&c.PhoneNumber, &email, &c.DatabaseID, &assignedTo,
		&c.Status, &disposition, &notes,
		&calledDate, &followUpDate, &demoDate, &proposalDate, &negotiationDate,
		&c.ReminderSent, &c.CreatedDate,
	)
	if err != nil {
		return nil, err
	}

	c.ClientName = clientName.String
	c.Department = department.String
	c.City = city.String
	c.CompanyName = companyName.String
	c.ContactPerson = contactPerson.String
	c.Designation = designation.String
	c.Email = email.String
	c.Disposition = disposition.String
	c.Notes = notes.String
	if assignedTo.Valid {
		c.AssignedTo = &assignedTo.Int64
	}
	if calledDate.Valid {
		c.CalledDate = &calledDate.Time
	}
	if followUpDate.Valid {
		c.FollowUpDate = &followUpDate.Time
	}
	if demoDate.Valid {
		c.DemoDate = &demoDate.Time
	}
	if proposalDate.Valid {
		c.ProposalDate = &proposalDate.Time
	}
	if negotiationDate.Valid {
		c.NegotiationDate = &negotiationDate.Time
	}

	return &c, nil
}

func (r *CallRepository) Create(ctx context.Context, c *entity.Call) error {
	query := `
		INSERT INTO calls (
			call_id, type, client_name, department, city,
			company_name, contact_person, designation,
			phone_number, email, database_id, status, created_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	return r.DB.QueryRowContext(ctx, query,
		c.CallID,
		c.Type,
		nullString(c.ClientName),
		nullString(c.Department),
		nullString(c.City),
		nullString(c.CompanyName),
		nullString(c.ContactPerson),
		nullString(c.Designation),
		c.PhoneNumber,
		nullString(c.Email),
		c.DatabaseID,
		c.Status,
		c.CreatedDate,
	).Scan(&c.ID)
}

func (r *CallRepository) FindByID(ctx context.Context, id int64) (*entity.Call, error) {
	query := fmt.Sprintf(`SELECT %s FROM calls WHERE id = $1`, callColumns)

	c, err := scanCall(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrCallNotFound
	}
	return c, err
}

func (r *CallRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Call, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s FROM calls WHERE id IN (%s) ORDER BY id`,
		callColumns, strings.Join(placeholders, ","))

	rows, err := r.DB.QueryContext(ctx, query, args...)
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

func (r *CallRepository) ListByStatus(ctx context.Context, status entity.Stage, f usecase.CallFilter) ([]*entity.Call, error) {
	// Follow-ups ordenam pela data agendada; o resto, mais recentes primeiro.
	order := "created_date DESC"
	if status == entity.StageFollowUp {
		order = "follow_up_date ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM calls WHERE status = $1`, callColumns)
	args := []any{status}
	if f.AssignedTo != nil {
		query += " AND assigned_to = $2"
		args = append(args, *f.AssignedTo)
	}
	query += " ORDER BY " + order

	rows, err := r.DB.QueryContext(ctx, query, args...)
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

func (r *CallRepository) Update(ctx context.Context, c *entity.Call) error {
	query := `
		UPDATE calls
		SET status = $1, disposition = $2, notes = $3, called_date = $4,
		    follow_up_date = $5, demo_date = $6, proposal_date = $7,
		    negotiation_date = $8, reminder_sent = $9
		WHERE id = $10
	`

	res, err := r.DB.ExecContext(ctx, query,
		c.Status,
		nullString(c.Disposition),
		nullString(c.Notes),
		c.CalledDate,
		c.FollowUpDate,
		c.DemoDate,
		c.ProposalDate,
		c.NegotiationDate,
		c.ReminderSent,
		c.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrCallNotFound
	}
	return nil
}

// AssignOwner grava o dono apenas se o call ainda não tiver um. O WHERE
// assigned_to IS NULL é o que torna a posse imutável mesmo sob corrida.
func (r *CallRepository) AssignOwner(ctx context.Context, callID, userID int64) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE calls SET assigned_to = $1 WHERE id = $2 AND assigned_to IS NULL`,
		userID, callID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM calls WHERE id = $1)`, callID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return entity.ErrCallNotFound
		}
		return entity.ErrAlreadyAssigned
	}
	return nil
}

// DueFollowUps lista follow-ups vencidos que ainda não receberam lembrete.
func (r *CallRepository) DueFollowUps(ctx context.Context, limit int) ([]*entity.Call, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM calls
		WHERE status = 'follow_up'
		  AND follow_up_date <= NOW()
		  AND reminder_sent = FALSE
		  AND assigned_to IS NOT NULL
		ORDER BY follow_up_date ASC
		LIMIT $1
	`, callColumns)

	rows, err := r.DB.QueryContext(ctx, query, limit)
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

// MarkReminderSent evita que o sweeper dispare o mesmo lembrete duas vezes.
func (r *CallRepository) MarkReminderSent(ctx context.Context, callID int64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE calls SET reminder_sent = TRUE WHERE id = $1`, callID)
	return err
}

func (r *CallRepository) UploadersFor(ctx context.Context, callIDs []int64) ([]int64, error) {
	if len(callIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(callIDs))
	args := make([]any, len(callIDs))
	for i, id := range callIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT l.uploaded_by
		FROM calls c
		JOIN lead_lists l ON c.database_id = l.id
		WHERE c.id IN (%s)
	`, strings.Join(placeholders, ","))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploaders []int64
	for rows.Next() {
		var u int64
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		uploaders = append(uploaders, u)
	}
	return uploaders, rows.Err()
}
