package orders

import (
	"github.com/shopspring/decimal"

	"smart-canteen/internal/domain"
)

// LineInput is one requested (menu item, quantity) pair. Client-supplied
// prices are never accepted; pricing always reads the catalog.
type LineInput struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

// PriceLines prices each requested line from the current catalog and sums the
// order total. Every line snapshots the price at this instant; a later catalog
// change never touches it. Any unknown menu item id fails the whole order.
//
// The repository calls this inside the creation transaction so the lookup and
// the insert share one consistent view.
func PriceLines(inputs []LineInput, menu map[int64]domain.MenuItem) ([]domain.OrderLine, decimal.Decimal, error) {
	lines := make([]domain.OrderLine, 0, len(inputs))
	total := decimal.Zero

	for _, in := range inputs {
		item, ok := menu[in.MenuItemID]
		if !ok {
			return nil, decimal.Zero, domain.NotFoundf("menu item %d not found", in.MenuItemID)
		}
		line := domain.OrderLine{
			MenuItemID: item.ID,
			Quantity:   in.Quantity,
			Price:      item.Price,
		}
		itemCopy := item
		line.MenuItem = &itemCopy

		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(in.Quantity))))
		lines = append(lines, line)
	}
	return lines, total, nil
}
