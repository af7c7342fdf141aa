package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"smart-canteen/internal/domain"
)

func menuFixture() map[int64]domain.MenuItem {
	return map[int64]domain.MenuItem{
		1: {ID: 1, Name: "Burger", Price: decimal.RequireFromString("12.99"), Category: domain.CategoryMeals, InStock: true},
		2: {ID: 2, Name: "Cola", Price: decimal.RequireFromString("2.99"), Category: domain.CategoryDrinks, InStock: true},
	}
}

func TestPriceLines(t *testing.T) {
	lines, total, err := PriceLines([]LineInput{
		{MenuItemID: 1, Quantity: 2},
		{MenuItemID: 2, Quantity: 2},
	}, menuFixture())

	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.True(t, decimal.RequireFromString("31.96").Equal(total), "got total %s", total)

	require.Equal(t, int64(1), lines[0].MenuItemID)
	require.Equal(t, 2, lines[0].Quantity)
	require.True(t, decimal.RequireFromString("12.99").Equal(lines[0].Price))
	require.NotNil(t, lines[0].MenuItem)
	require.Equal(t, "Burger", lines[0].MenuItem.Name)
}

func TestPriceLinesUnknownItemFailsWholeOrder(t *testing.T) {
	lines, total, err := PriceLines([]LineInput{
		{MenuItemID: 1, Quantity: 1},
		{MenuItemID: 99, Quantity: 1},
	}, menuFixture())

	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Nil(t, lines)
	require.True(t, total.IsZero())
}

func TestPriceLinesSnapshotSurvivesCatalogChange(t *testing.T) {
	menu := menuFixture()
	lines, total, err := PriceLines([]LineInput{{MenuItemID: 1, Quantity: 1}}, menu)
	require.NoError(t, err)

	// A later catalog price change must not leak into the priced line.
	item := menu[1]
	item.Price = decimal.RequireFromString("99.99")
	menu[1] = item

	require.True(t, decimal.RequireFromString("12.99").Equal(lines[0].Price))
	require.True(t, decimal.RequireFromString("12.99").Equal(total))
}

func TestPriceLinesSameItemTwiceMakesTwoLines(t *testing.T) {
	lines, total, err := PriceLines([]LineInput{
		{MenuItemID: 2, Quantity: 1},
		{MenuItemID: 2, Quantity: 3},
	}, menuFixture())

	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.True(t, decimal.RequireFromString("11.96").Equal(total))
}
