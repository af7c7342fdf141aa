package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"smart-canteen/internal/domain"
)

type RepositoryInterface interface {
	CreateOrder(ctx context.Context, draft *domain.Order, items []LineInput) (*domain.Order, error)
	OrderByID(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, customerID *int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, domain.OrderStatus, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const orderColumns = `id, customer_id, customer_name, total_amount, status, payment_method,
	special_notes, table_number, estimated_time, assigned_staff, created_at, updated_at`

const menuItemColumns = `id, name, description, price, category, image, in_stock, stock_quantity, created_at, updated_at`

// CreateOrder resolves the requested menu items, prices the lines and inserts
// the order header plus all lines in one transaction. Either everything is
// persisted or nothing is. Stock is intentionally not decremented here; it is
// managed through inventory updates only.
func (r *Repository) CreateOrder(ctx context.Context, draft *domain.Order, items []LineInput) (*domain.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids := make([]int64, 0, len(items))
	for _, in := range items {
		ids = append(ids, in.MenuItemID)
	}

	rows, err := tx.Query(ctx, `SELECT `+menuItemColumns+` FROM menu_items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve menu items: %w", err)
	}
	menu := make(map[int64]domain.MenuItem)
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.Image,
			&m.InStock, &m.StockQuantity, &m.CreatedAt, &m.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		menu[m.ID] = m
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolve menu items: %w", err)
	}

	lines, total, err := PriceLines(items, menu)
	if err != nil {
		return nil, err
	}

	order := *draft
	order.TotalAmount = total
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (customer_id, customer_name, total_amount, status, payment_method,
		                    special_notes, table_number, estimated_time, assigned_staff)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, order.CustomerID, order.CustomerName, order.TotalAmount, order.Status, order.PaymentMethod,
		order.SpecialNotes, order.TableNumber, order.EstimatedTime, order.AssignedStaff).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for i := range lines {
		lines[i].OrderID = order.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, lines[i].OrderID, lines[i].MenuItemID, lines[i].Quantity, lines[i].Price).
			Scan(&lines[i].ID)
		if err != nil {
			return nil, fmt.Errorf("insert order item %d: %w", lines[i].MenuItemID, err)
		}
	}
	order.Items = lines

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &order, nil
}

func (r *Repository) OrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns orders newest first, with a stable tiebreak on id so
// repeated reads with no writes in between return an identical list. A nil
// customerID means all orders (staff/admin view).
func (r *Repository) ListOrders(ctx context.Context, customerID *int64) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if customerID != nil {
		query += ` WHERE customer_id = $1`
		args = append(args, *customerID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus persists a single status write (last-write-wins, no conflict
// detection) and returns the updated order plus the status it replaced.
// Completing an order forces estimated_time to zero; every other transition
// leaves it untouched.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, domain.OrderStatus, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var old domain.OrderStatus
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&old)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", domain.NotFoundf("order %d not found", id)
	}
	if err != nil {
		return nil, "", fmt.Errorf("lock order: %w", err)
	}

	row := tx.QueryRow(ctx, `
		UPDATE orders
		SET status = $2,
		    estimated_time = CASE WHEN $2 = 'completed' THEN 0 ELSE estimated_time END,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns, id, status)
	order, err := scanOrder(row)
	if err != nil {
		return nil, "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", fmt.Errorf("commit transaction: %w", err)
	}

	if err := r.loadItems(ctx, []*domain.Order{order}); err != nil {
		return nil, "", err
	}
	return order, old, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.TotalAmount, &o.Status, &o.PaymentMethod,
		&o.SpecialNotes, &o.TableNumber, &o.EstimatedTime, &o.AssignedStaff, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &o, nil
}

// loadItems attaches every order's lines, joined with the current catalog row
// for display. The LEFT JOIN tolerates menu items deleted after purchase; the
// line's own price and quantity are the historical truth either way.
func (r *Repository) loadItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		o.Items = []domain.OrderLine{}
		ids = append(ids, o.ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.price,
		       m.id, m.name, m.description, m.price, m.category, m.image,
		       m.in_stock, m.stock_quantity, m.created_at, m.updated_at
		FROM order_items oi
		LEFT JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line          domain.OrderLine
			itemID        *int64
			name          *string
			description   *string
			price         *decimal.Decimal
			category      *string
			image         *string
			inStock       *bool
			stockQuantity *int
			createdAt     *time.Time
			updatedAt     *time.Time
		)
		if err := rows.Scan(&line.ID, &line.OrderID, &line.MenuItemID, &line.Quantity, &line.Price,
			&itemID, &name, &description, &price, &category, &image,
			&inStock, &stockQuantity, &createdAt, &updatedAt); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if itemID != nil {
			line.MenuItem = &domain.MenuItem{
				ID:            *itemID,
				Name:          *name,
				Description:   description,
				Price:         *price,
				Category:      domain.Category(*category),
				Image:         image,
				InStock:       *inStock,
				StockQuantity: *stockQuantity,
				CreatedAt:     *createdAt,
				UpdatedAt:     *updatedAt,
			}
		}
		if o, ok := byID[line.OrderID]; ok {
			o.Items = append(o.Items, line)
		}
	}
	return rows.Err()
}
