package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Run loads demo accounts, employees and a starter menu. It is a no-op when
// any user already exists, so running it against a live database is safe.
func Run(ctx context.Context, db *pgxpool.Pool, log zerolog.Logger) error {
	var count int64
	if err := db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Info().Msg("seed skipped, users already exist")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	users := []struct {
		name, email, role string
	}{
		{"Admin User", "admin@canteen.local", "admin"},
		{"Kitchen Staff", "staff@canteen.local", "staff"},
		{"Demo Customer", "customer@canteen.local", "customer"},
	}
	ids := map[string]int64{}
	for _, u := range users {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO users (name, email, password_hash, role)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, u.name, u.email, string(hash), u.role).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
		ids[u.role] = id
	}

	joined := time.Now().UTC().AddDate(-1, 0, 0)
	for _, e := range []struct {
		role   string
		rate   string
		hours  int
		salary string
	}{
		{"admin", "25.00", 160, "4000.00"},
		{"staff", "15.50", 160, "2480.00"},
	} {
		rate, _ := decimal.NewFromString(e.rate)
		salary, _ := decimal.NewFromString(e.salary)
		_, err := tx.Exec(ctx, `
			INSERT INTO employees (user_id, hourly_rate, working_hours, total_salary, joined_date)
			VALUES ($1, $2, $3, $4, $5)
		`, ids[e.role], rate, e.hours, salary, joined)
		if err != nil {
			return fmt.Errorf("seed employee for %s: %w", e.role, err)
		}
	}

	menu := []struct {
		name, description, price, category string
		stock                              int
	}{
		{"Burger", "Beef patty with lettuce, tomato and house sauce", "12.99", "meals", 50},
		{"Margherita Pizza", "Tomato, mozzarella and basil", "14.50", "meals", 30},
		{"French Fries", "Crispy golden fries with sea salt", "4.99", "snacks", 100},
		{"Chicken Wings", "Six spicy wings with blue cheese dip", "8.99", "snacks", 60},
		{"Caesar Salad", "Romaine, parmesan, croutons and dressing", "7.49", "snacks", 40},
		{"Cola", "Chilled 330ml can", "2.99", "drinks", 200},
		{"Fresh Orange Juice", "Squeezed to order", "4.50", "drinks", 80},
		{"Coffee", "Freshly brewed americano", "3.25", "drinks", 150},
	}
	for _, m := range menu {
		price, _ := decimal.NewFromString(m.price)
		_, err := tx.Exec(ctx, `
			INSERT INTO menu_items (name, description, price, category, in_stock, stock_quantity)
			VALUES ($1, $2, $3, $4, true, $5)
		`, m.name, m.description, price, m.category, m.stock)
		if err != nil {
			return fmt.Errorf("seed menu item %s: %w", m.name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	log.Info().Int("users", len(users)).Int("menu_items", len(menu)).Msg("seed completed")
	return nil
}
