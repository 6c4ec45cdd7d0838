package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// ReportRepository concentra as consultas de relatório (somente leitura).
type ReportRepository struct {
	DB *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

type CallReportFilter struct {
	DatabaseName string
	SalesAgent   string
	DateFrom     string // YYYY-MM-DD
	DateTo       string
	Status       string
}

type CallReportRow struct {
	Call         *entity.Call `json:"call"`
	AgentName    string       `json:"agent_name,omitempty"`
	DatabaseName string       `json:"database_name,omitempty"`
}

type AgentPerformance struct {
	AgentName          string `json:"agent_name"`
	TotalCalls         int    `json:"total_calls"`
	ConnectedCalls     int    `json:"connected_calls"`
	ConvertedCalls     int    `json:"converted_calls"`
	ConversionRate     string `json:"conversion_rate"`
	FollowUpsScheduled int    `json:"follow_ups_scheduled"`
}

func (r *ReportRepository) CallReport(ctx context.Context, f CallReportFilter) ([]*CallReportRow, error) {
	query := fmt.Sprintf(`
		SELECT %s, COALESCE(e.full_name, ''), COALESCE(l.name, '')
		FROM calls c
		LEFT JOIN employees e ON c.assigned_to = e.id
		LEFT JOIN lead_lists l ON c.database_id = l.id
		WHERE 1=1
	`, prefixedCallColumns("c"))

	args := []any{}
	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}

	if f.DatabaseName != "" {
		query += " AND l.name = " + next()
		args = append(args, f.DatabaseName)
	}
	if f.SalesAgent != "" {
		query += " AND e.full_name ILIKE " + next()
		args = append(args, "%"+f.SalesAgent+"%")
	}
	if f.DateFrom != "" {
		query += " AND c.created_date::date >= " + next()
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		query += " AND c.created_date::date <= " + next()
		args = append(args, f.DateTo)
	}
	if f.Status != "" {
		query += " AND c.status = " + next()
		args = append(args, f.Status)
	}

	query += " ORDER BY c.created_date DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []*CallReportRow
	for rows.Next() {
		row := &CallReportRow{}
		c, err := scanCallWith(rows, &row.AgentName, &row.DatabaseName)
		if err != nil {
			return nil, err
		}
		row.Call = c
		report = append(report, row)
	}
	return report, rows.Err()
}

func (r *ReportRepository) Performance(ctx context.Context, dateFrom, dateTo string) ([]*AgentPerformance, error) {
	query := `
		SELECT
			e.full_name,
			COUNT(c.id),
			SUM(CASE WHEN c.status IN ('closure', 'converted') THEN 1 ELSE 0 END),
			SUM(CASE WHEN c.status = 'converted' THEN 1 ELSE 0 END),
			SUM(CASE WHEN c.status = 'follow_up' THEN 1 ELSE 0 END)
		FROM calls c
		INNER JOIN employees e ON c.assigned_to = e.id
		WHERE c.assigned_to IS NOT NULL
	`
	args := []any{}
	n := 0
	if dateFrom != "" {
		n++
		query += fmt.Sprintf(" AND c.created_date::date >= $%d", n)
		args = append(args, dateFrom)
	}
	if dateTo != "" {
		n++
		query += fmt.Sprintf(" AND c.created_date::date <= $%d", n)
		args = append(args, dateTo)
	}
	query += " GROUP BY e.full_name ORDER BY e.full_name"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []*AgentPerformance
	for rows.Next() {
		var p AgentPerformance
		var connected, converted, followUps sql.NullInt64
		if err := rows.Scan(&p.AgentName, &p.TotalCalls, &connected, &converted, &followUps); err != nil {
			return nil, err
		}
		p.ConnectedCalls = int(connected.Int64)
		p.ConvertedCalls = int(converted.Int64)
		p.FollowUpsScheduled = int(followUps.Int64)
		if p.ConnectedCalls > 0 {
			p.ConversionRate = fmt.Sprintf("%.2f", float64(p.ConvertedCalls)/float64(p.ConnectedCalls)*100)
		} else {
			p.ConversionRate = "0.00"
		}
		report = append(report, &p)
	}
	return report, rows.Err()
}

func prefixedCallColumns(alias string) string {
	return fmt.Sprintf(`
		%[1]s.id, %[1]s.call_id, %[1]s.type, %[1]s.client_name, %[1]s.department, %[1]s.city,
		%[1]s.company_name, %[1]s.contact_person, %[1]s.designation,
		%[1]s.phone_number, %[1]s.email, %[1]s.database_id, %[1]s.assigned_to,
		%[1]s.status, %[1]s.disposition, %[1]s.notes,
		%[1]s.called_date, %[1]s.follow_up_date, %[1]s.demo_date, %[1]s.proposal_date, %[1]s.negotiation_date,
		%[1]s.reminder_sent, %[1]s.created_date
	`, alias)
}

// scanCallWith lê as colunas do call mais colunas extras ao final.
func scanCallWith(rows *sql.Rows, extras ...any) (*entity.Call, error) {
	var c entity.Call
	var clientName, department, city sql.NullString
	var companyName, contactPerson, designation sql.NullString
	var email, disposition, notes sql.NullString
	var assignedTo sql.NullInt64
	var calledDate, followUpDate, demoDate, proposalDate, negotiationDate sql.NullTime

	dest := []any{
		&c.ID, &c.CallID, &c.Type, &clientName, &department, &city,
		&companyName, &contactPerson, &designation,
		&c.PhoneNumber, &email, &c.DatabaseID, &assignedTo,
		&c.Status, &disposition, &notes,
		&calledDate, &followUpDate, &demoDate, &proposalDate, &negotiationDate,
		&c.ReminderSent, &c.CreatedDate,
	}
	dest = append(dest, extras...)

	if err := rows.Scan(dest...); err != nil {
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
