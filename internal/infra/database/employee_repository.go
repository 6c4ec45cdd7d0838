package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

var ErrEmailAlreadyExists = errors.New("email already exists")

type EmployeeRepository struct {
	DB *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

const employeeColumns = `
	id, empid, full_name, email, password, user_type, user_role,
	COALESCE(department, ''), COALESCE(phone_number, ''), COALESCE(address, ''),
	COALESCE(salary, ''), COALESCE(status, ''), active, online_status,
	dob, doj, created_date
`

func scanEmployee(row interface{ Scan(...any) error }) (*entity.Employee, error) {
	var e entity.Employee
	var dob, doj sql.NullTime

	err := row.Scan(
		&e.ID, &e.EmpID, &e.FullName, &e.Email, &e.PasswordHash,
		&e.UserType, &e.UserRole, &e.Department, &e.PhoneNumber,
		&e.Address, &e.Salary, &e.Status, &e.Active, &e.OnlineStatus,
		&dob, &doj, &e.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		e.DOB = &dob.Time
	}
	if doj.Valid {
		e.DOJ = &doj.Time
	}
	return &e, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrEmployeeNotFound
	}
	return e, err
}

func (r *EmployeeRepository) FindActiveByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1 AND active = 'active'`

	e, err := scanEmployee(r.DB.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, entity.ErrEmployeeNotFound
	}
	return e, err
}

func (r *EmployeeRepository) ListActiveSales(ctx context.Context) ([]*entity.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE active = 'active'
		  AND (user_role = 'sales_manager' OR user_role = 'sales_executive')
		ORDER BY created_date DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (
			empid, full_name, email, password, user_type, user_role,
			department, phone_number, address, salary, status, active, dob, doj
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'active', $12, $13)
		RETURNING id, created_date
	`

	err := r.DB.QueryRowContext(ctx, query,
		e.EmpID, e.FullName, e.Email, e.PasswordHash, e.UserType, e.UserRole,
		nullString(e.Department), nullString(e.PhoneNumber), nullString(e.Address),
		nullString(e.Salary), nullString(e.Status), e.DOB, e.DOJ,
	).Scan(&e.ID, &e.CreatedDate)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailAlreadyExists
		}
		logrus.Errorf("Erro crítico no banco: %v", err)
		return err
	}
	return nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	query := `
		UPDATE employees
		SET empid = $1, full_name = $2, email = $3, user_type = $4, user_role = $5,
		    department = $6, phone_number = $7, address = $8, salary = $9,
		    status = $10, dob = $11, doj = $12
	`
	args := []any{
		e.EmpID, e.FullName, e.Email, e.UserType, e.UserRole,
		nullString(e.Department), nullString(e.PhoneNumber), nullString(e.Address),
		nullString(e.Salary), nullString(e.Status), e.DOB, e.DOJ,
	}

	// Senha só muda quando informada.
	if e.PasswordHash != "" {
		query += `, password = $13 WHERE id = $14`
		args = append(args, e.PasswordHash, e.ID)
	} else {
		query += ` WHERE id = $13`
		args = append(args, e.ID)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrEmployeeNotFound
	}
	return nil
}

// Deactivate é o delete lógico: o registro fica para histórico e relatórios.
func (r *EmployeeRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE employees SET active = 'inactive' WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) SetOnlineStatus(ctx context.Context, id int64, status string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE employees SET online_status = $1 WHERE id = $2`, status, id)
	return err
}
