package cart

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"smart-canteen/internal/domain"
)

// StoreInterface persists per-user carts. The cart is a scratchpad: placing
// an order reads it, the order itself is the durable record.
type StoreInterface interface {
	Load(ctx context.Context, userID int64) (*domain.Cart, error)
	Replace(ctx context.Context, userID int64, items []domain.CartItem) error
	AdjustItem(ctx context.Context, userID int64, menuItemID int64, delta int) (int, error)
	Clear(ctx context.Context, userID int64) error
}

const cartTTL = 24 * time.Hour

// adjustScript applies a quantity delta to one hash field, floors the result
// at zero and deletes the field when it hits the floor. Runs atomically so
// two rapid taps on +/- never interleave.
var adjustScript = redis.NewScript(`
	local qty = (tonumber(redis.call('HGET', KEYS[1], ARGV[1])) or 0) + tonumber(ARGV[2])
	if qty <= 0 then
		redis.call('HDEL', KEYS[1], ARGV[1])
		return 0
	end
	redis.call('HSET', KEYS[1], ARGV[1], qty)
	redis.call('EXPIRE', KEYS[1], ARGV[3])
	return qty
`)

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func cartKey(userID int64) string {
	return fmt.Sprintf("cart:%d:items", userID)
}

func (s *Store) Load(ctx context.Context, userID int64) (*domain.Cart, error) {
	fields, err := s.rdb.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	cart := &domain.Cart{UserID: userID, Items: []domain.CartItem{}}
	for field, value := range fields {
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(value)
		if err != nil || qty <= 0 {
			continue
		}
		cart.Items = append(cart.Items, domain.CartItem{MenuItemID: id, Quantity: qty})
	}
	return cart, nil
}

// Replace swaps the whole cart in one pipeline. An empty item list is a
// clear.
func (s *Store) Replace(ctx context.Context, userID int64, items []domain.CartItem) error {
	key := cartKey(userID)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(items) > 0 {
		fields := make(map[string]any, len(items))
		for _, item := range items {
			fields[strconv.FormatInt(item.MenuItemID, 10)] = item.Quantity
		}
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, cartTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("replace cart: %w", err)
	}
	return nil
}

func (s *Store) AdjustItem(ctx context.Context, userID int64, menuItemID int64, delta int) (int, error) {
	qty, err := adjustScript.Run(ctx, s.rdb, []string{cartKey(userID)},
		menuItemID, delta, int(cartTTL.Seconds())).Int()
	if err != nil {
		return 0, fmt.Errorf("adjust cart item: %w", err)
	}
	return qty, nil
}

func (s *Store) Clear(ctx context.Context, userID int64) error {
	if err := s.rdb.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
