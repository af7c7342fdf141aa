package employees

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"smart-canteen/internal/domain"
)

type RepositoryInterface interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	EmployeeByID(ctx context.Context, id int64) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, upd UpdateEmployeeRequest) (*domain.Employee, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const employeeQuery = `
	SELECT e.id, e.user_id, e.hourly_rate, e.working_hours, e.total_salary, e.joined_date,
	       e.created_at, e.updated_at,
	       u.id, u.name, u.email, u.password_hash, u.role, u.phone, u.created_at, u.updated_at
	FROM employees e
	JOIN users u ON u.id = e.user_id`

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var (
		e domain.Employee
		u domain.User
	)
	err := row.Scan(&e.ID, &e.UserID, &e.HourlyRate, &e.WorkingHours, &e.TotalSalary, &e.JoinedDate,
		&e.CreatedAt, &e.UpdatedAt,
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("employee not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	e.User = &u
	return &e, nil
}

func (r *Repository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.Query(ctx, employeeQuery+` ORDER BY u.name`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	list := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return list, nil
}

func (r *Repository) EmployeeByID(ctx context.Context, id int64) (*domain.Employee, error) {
	row := r.db.QueryRow(ctx, employeeQuery+` WHERE e.id = $1`, id)
	return scanEmployee(row)
}

// UpdateEmployee changes payroll fields only. Name, email and role live on
// the users row and are not editable here.
func (r *Repository) UpdateEmployee(ctx context.Context, id int64, upd UpdateEmployeeRequest) (*domain.Employee, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE employees
		SET hourly_rate   = COALESCE($2, hourly_rate),
		    working_hours = COALESCE($3, working_hours),
		    total_salary  = COALESCE($4, total_salary),
		    updated_at    = now()
		WHERE id = $1
	`, id, upd.HourlyRate, upd.WorkingHours, upd.TotalSalary)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.NotFoundf("employee %d not found", id)
	}
	return r.EmployeeByID(ctx, id)
}
