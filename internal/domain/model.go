package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

type Category string

const (
	CategorySnacks Category = "snacks"
	CategoryMeals  Category = "meals"
	CategoryDrinks Category = "drinks"
)

func (c Category) IsValid() bool {
	switch c {
	case CategorySnacks, CategoryMeals, CategoryDrinks:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentOnline:
		return true
	}
	return false
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether an order with this status still belongs in the
// live staff queue.
func (s OrderStatus) IsActive() bool {
	return s == StatusPending || s == StatusPreparing
}

// DefaultEstimatedTime is the fixed preparation estimate (minutes) assigned
// to every new order. Transitioning to completed resets it to zero.
const DefaultEstimatedTime = 25

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthUser is the request-scoped identity attached by the auth middleware.
type AuthUser struct {
	ID   int64
	Name string
	Role Role
}

type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type MenuItem struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      Category        `json:"category"`
	Image         *string         `json:"image"`
	InStock       bool            `json:"in_stock"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Order struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	Items         []OrderLine     `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	SpecialNotes  *string         `json:"special_notes"`
	TableNumber   *int            `json:"table_number"`
	EstimatedTime int             `json:"estimated_time"`
	AssignedStaff *string         `json:"assigned_staff"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderLine is one line of an order. Price is the snapshot of the menu item
// price at order time; MenuItem carries the current catalog display data and
// is nil when the item has since been deleted from the catalog.
type OrderLine struct {
	ID         int64           `json:"id"`
	OrderID    int64           `json:"order_id"`
	MenuItemID int64           `json:"menu_item_id"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	MenuItem   *MenuItem       `json:"menu_item,omitempty"`
}

type Employee struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	WorkingHours int             `json:"working_hours"`
	TotalSalary  decimal.Decimal `json:"total_salary"`
	JoinedDate   *time.Time      `json:"joined_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	User         *User           `json:"user,omitempty"`
}

type CartItem struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

type Cart struct {
	UserID int64      `json:"user_id"`
	Items  []CartItem `json:"items"`
}
