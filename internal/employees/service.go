package employees

import (
	"context"

	"github.com/shopspring/decimal"

	"smart-canteen/internal/domain"
)

type UpdateEmployeeRequest struct {
	HourlyRate   *decimal.Decimal `json:"hourly_rate"`
	WorkingHours *int             `json:"working_hours"`
	TotalSalary  *decimal.Decimal `json:"total_salary"`
}

type ServiceInterface interface {
	List(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id int64) (*domain.Employee, error)
	Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (*domain.Employee, error)
}

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.ListEmployees(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.repo.EmployeeByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (*domain.Employee, error) {
	ve := domain.NewValidationError()
	if req.HourlyRate != nil && req.HourlyRate.IsNegative() {
		ve.Add("hourly_rate", "hourly rate must not be negative")
	}
	if req.WorkingHours != nil && *req.WorkingHours < 0 {
		ve.Add("working_hours", "working hours must not be negative")
	}
	if req.TotalSalary != nil && req.TotalSalary.IsNegative() {
		ve.Add("total_salary", "total salary must not be negative")
	}
	if ve.HasErrors() {
		return nil, ve
	}
	return s.repo.UpdateEmployee(ctx, id, req)
}
