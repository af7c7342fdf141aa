package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"smart-canteen/internal/domain"
)

type RepositoryInterface interface {
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	MenuItemByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int64, upd UpdateMenuItemRequest) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int64) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const menuItemColumns = `id, name, description, price, category, image, in_stock, stock_quantity, created_at, updated_at`

func scanMenuItem(row pgx.Row) (*domain.MenuItem, error) {
	var m domain.MenuItem
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.Image,
		&m.InStock, &m.StockQuantity, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("menu item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan menu item: %w", err)
	}
	return &m, nil
}

func (r *Repository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO menu_items (name, description, price, category, image, in_stock, stock_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, item.Name, item.Description, item.Price, item.Category, item.Image, item.InStock, item.StockQuantity).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

func (r *Repository) MenuItemByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	row := r.db.QueryRow(ctx, `SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id)
	return scanMenuItem(row)
}

func (r *Repository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+menuItemColumns+` FROM menu_items ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// UpdateMenuItem writes only the fields the request actually carries; absent
// fields keep their stored value. A price change here never rewrites lines of
// orders already placed.
func (r *Repository) UpdateMenuItem(ctx context.Context, id int64, upd UpdateMenuItemRequest) (*domain.MenuItem, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE menu_items
		SET name           = COALESCE($2, name),
		    description    = COALESCE($3, description),
		    price          = COALESCE($4, price),
		    category       = COALESCE($5, category),
		    image          = COALESCE($6, image),
		    in_stock       = COALESCE($7, in_stock),
		    stock_quantity = COALESCE($8, stock_quantity),
		    updated_at     = now()
		WHERE id = $1
		RETURNING `+menuItemColumns,
		id, upd.Name, upd.Description, upd.Price, upd.Category, upd.Image, upd.InStock, upd.StockQuantity)
	return scanMenuItem(row)
}

// DeleteMenuItem removes the catalog row only. order_items keep their copied
// id and price, so purchase history survives the delete.
func (r *Repository) DeleteMenuItem(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("menu item %d not found", id)
	}
	return nil
}
