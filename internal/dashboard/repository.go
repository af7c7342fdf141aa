package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Stats is the admin dashboard snapshot. Revenue counts completed orders
// only; a cancelled or in-flight order contributes nothing.
type Stats struct {
	TotalOrders     int64           `json:"total_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	CompletedOrders int64           `json:"completed_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalMenuItems  int64           `json:"total_menu_items"`
	OutOfStockItems int64           `json:"out_of_stock_items"`
	TotalCustomers  int64           `json:"total_customers"`
	TotalEmployees  int64           `json:"total_employees"`
}

type RepositoryInterface interface {
	Stats(ctx context.Context) (*Stats, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Stats computes every figure fresh per request; nothing is cached or
// maintained incrementally.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM orders),
			(SELECT count(*) FROM orders WHERE status = 'pending'),
			(SELECT count(*) FROM orders WHERE status = 'completed'),
			(SELECT COALESCE(sum(total_amount), 0) FROM orders WHERE status = 'completed'),
			(SELECT count(*) FROM menu_items),
			(SELECT count(*) FROM menu_items WHERE in_stock = false),
			(SELECT count(*) FROM users WHERE role = 'customer'),
			(SELECT count(*) FROM employees)
	`).Scan(&s.TotalOrders, &s.PendingOrders, &s.CompletedOrders, &s.TotalRevenue,
		&s.TotalMenuItems, &s.OutOfStockItems, &s.TotalCustomers, &s.TotalEmployees)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &s, nil
}
