package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
)

func line(id string, size catalogdomain.Size, price string, qty int, flavors ...string) catalogdomain.ComposedLine {
	fl := make([]catalogdomain.Flavor, 0, len(flavors))
	for _, f := range flavors {
		fl = append(fl, catalogdomain.Flavor{ID: f, Name: f})
	}
	return catalogdomain.ComposedLine{
		BaseItemID:   id,
		BaseItemName: id,
		Category:     catalogdomain.CategorySquare,
		Size:         size,
		Flavors:      fl,
		Quantity:     qty,
		UnitPrice:    decimal.RequireFromString(price),
	}
}

func newCart(t *testing.T) *Cart {
	t.Helper()
	c, err := NewCart("sess-1")
	require.NoError(t, err)
	return c
}

func TestAdd_MergesSameItemAndSize(t *testing.T) {
	c := newCart(t)
	c.Add(line("p1", catalogdomain.SizeMedium, "35.00", 1, "p1"))
	c.Add(line("p1", catalogdomain.SizeMedium, "40.00", 2, "p1", "p2"))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	// the first composition wins; flavors of the merged line are discarded
	assert.Len(t, lines[0].Flavors, 1)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("35.00")))
}

func TestAdd_DifferentSizeIsSeparateLine(t *testing.T) {
	c := newCart(t)
	c.Add(line("p1", catalogdomain.SizeMedium, "35.00", 1))
	c.Add(line("p1", catalogdomain.SizeLarge, "45.00", 1))
	c.Add(line("p2", catalogdomain.SizeMedium, "35.00", 1))

	require.Equal(t, 3, c.Len())
	assert.Equal(t, "p1", c.Lines()[0].BaseItemID)
	assert.Equal(t, catalogdomain.SizeLarge, c.Lines()[1].Size)
}

func TestTotal_IsSumOfSubtotals(t *testing.T) {
	c := newCart(t)
	c.Add(line("p1", catalogdomain.SizeMedium, "35.50", 2))
	c.Add(line("b1", catalogdomain.SizeMedium, "12.00", 1))
	assert.True(t, c.Total().Equal(decimal.RequireFromString("83.00")), c.Total().String())

	require.NoError(t, c.UpdateQuantity(catalogdomain.LineKey{BaseItemID: "p1", Size: catalogdomain.SizeMedium}, 1))
	assert.True(t, c.Total().Equal(decimal.RequireFromString("47.50")), c.Total().String())

	c.Clear()
	assert.True(t, c.Total().IsZero())
}

func TestUpdateQuantity(t *testing.T) {
	c := newCart(t)
	key := catalogdomain.LineKey{BaseItemID: "p1", Size: catalogdomain.SizeMedium}
	c.Add(line("p1", catalogdomain.SizeMedium, "35.00", 1))

	require.NoError(t, c.UpdateQuantity(key, 4))
	assert.Equal(t, 4, c.Lines()[0].Quantity)

	require.NoError(t, c.UpdateQuantity(key, 0))
	assert.Equal(t, 0, c.Len())

	require.ErrorIs(t, c.UpdateQuantity(key, 1), ErrLineNotFound)
}

func TestRemove_IsIdempotent(t *testing.T) {
	c := newCart(t)
	key := catalogdomain.LineKey{BaseItemID: "p1", Size: catalogdomain.SizeMedium}
	c.Add(line("p1", catalogdomain.SizeMedium, "35.00", 1))

	c.Remove(key)
	c.Remove(key)
	assert.Equal(t, 0, c.Len())
}

func TestLines_ReturnsCopies(t *testing.T) {
	c := newCart(t)
	c.Add(line("p1", catalogdomain.SizeMedium, "35.00", 1, "p1"))

	snapshot := c.Lines()
	snapshot[0].Quantity = 99
	snapshot[0].Flavors[0].Name = "changed"

	assert.Equal(t, 1, c.Lines()[0].Quantity)
	assert.Equal(t, "p1", c.Lines()[0].Flavors[0].Name)
}

func TestNewCart_RequiresSession(t *testing.T) {
	_, err := NewCart("")
	require.ErrorIs(t, err, ErrEmptySessionID)
}
