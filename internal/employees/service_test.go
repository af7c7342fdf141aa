package employees

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"smart-canteen/internal/domain"
)

type fakeRepo struct {
	employees map[int64]*domain.Employee
}

func (f *fakeRepo) ListEmployees(_ context.Context) ([]domain.Employee, error) {
	out := []domain.Employee{}
	for _, e := range f.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeRepo) EmployeeByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, domain.NotFoundf("employee %d not found", id)
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) UpdateEmployee(_ context.Context, id int64, upd UpdateEmployeeRequest) (*domain.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, domain.NotFoundf("employee %d not found", id)
	}
	if upd.HourlyRate != nil {
		e.HourlyRate = *upd.HourlyRate
	}
	if upd.WorkingHours != nil {
		e.WorkingHours = *upd.WorkingHours
	}
	if upd.TotalSalary != nil {
		e.TotalSalary = *upd.TotalSalary
	}
	cp := *e
	return &cp, nil
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestUpdateEmployee(t *testing.T) {
	repo := &fakeRepo{employees: map[int64]*domain.Employee{
		1: {ID: 1, UserID: 2, HourlyRate: decimal.RequireFromString("15.50"), WorkingHours: 160},
	}}
	svc := NewService(repo)

	hours := 120
	updated, err := svc.Update(context.Background(), 1, UpdateEmployeeRequest{
		HourlyRate:   dec("17.00"),
		WorkingHours: &hours,
	})

	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("17.00").Equal(updated.HourlyRate))
	require.Equal(t, 120, updated.WorkingHours)
}

func TestUpdateEmployeeValidation(t *testing.T) {
	svc := NewService(&fakeRepo{employees: map[int64]*domain.Employee{}})

	hours := -1
	_, err := svc.Update(context.Background(), 1, UpdateEmployeeRequest{
		HourlyRate:   dec("-2.00"),
		WorkingHours: &hours,
		TotalSalary:  dec("-100.00"),
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "hourly_rate")
	require.Contains(t, ve.Fields, "working_hours")
	require.Contains(t, ve.Fields, "total_salary")
}

func TestUpdateEmployeeNotFound(t *testing.T) {
	svc := NewService(&fakeRepo{employees: map[int64]*domain.Employee{}})

	_, err := svc.Update(context.Background(), 9, UpdateEmployeeRequest{HourlyRate: dec("10.00")})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
