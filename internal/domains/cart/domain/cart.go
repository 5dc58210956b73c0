package domain

import (
	"errors"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
)

var (
	ErrEmptySessionID = errors.New("session id is required")
	ErrLineNotFound   = errors.New("cart line not found")
	ErrEmptyCart      = errors.New("cart is empty")
)

// Cart is a session's pending order. It holds at most one line per LineKey,
// in the order lines were first added.
type Cart struct {
	SessionID string
	lines     []catalogdomain.ComposedLine
}

func NewCart(sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	return &Cart{SessionID: sessionID}, nil
}

// Restore rebuilds a cart from persisted lines, merging any duplicate keys.
func Restore(sessionID string, lines []catalogdomain.ComposedLine) (*Cart, error) {
	c, err := NewCart(sessionID)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		c.Add(line)
	}
	return c, nil
}

// Add merges by (base item, size). When the key already exists the stored
// composition is kept and only the quantity grows; otherwise the line is appended.
func (c *Cart) Add(line catalogdomain.ComposedLine) {
	if line.Quantity <= 0 {
		return
	}
	if i := c.index(line.Key()); i >= 0 {
		c.lines[i].Quantity += line.Quantity
		return
	}
	c.lines = append(c.lines, line.Clone())
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less removes it.
func (c *Cart) UpdateQuantity(key catalogdomain.LineKey, quantity int) error {
	i := c.index(key)
	if i < 0 {
		return ErrLineNotFound
	}
	if quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	c.lines[i].Quantity = quantity
	return nil
}

// Remove drops the line with the given key. Removing a missing key is a no-op.
func (c *Cart) Remove(key catalogdomain.LineKey) {
	if i := c.index(key); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Total sums the line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Lines returns a deep copy of the cart contents.
func (c *Cart) Lines() []catalogdomain.ComposedLine {
	out := make([]catalogdomain.ComposedLine, len(c.lines))
	for i, line := range c.lines {
		out[i] = line.Clone()
	}
	return out
}

func (c *Cart) Clear() { c.lines = nil }

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) index(key catalogdomain.LineKey) int {
	for i, line := range c.lines {
		if line.Key() == key {
			return i
		}
	}
	return -1
}
