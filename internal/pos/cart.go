package pos

import (
	"fmt"
	"time"

	"canteen-system/internal/models"
)

// Line is one entry in an active cart: a menu item reference with the
// name and unit price captured at add time. Later catalog price changes
// do not affect existing lines.
type Line struct {
	ID         string  `json:"id"`
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// Totals holds the derived amounts for a cart. Total is clamped at zero.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
}

// Cart is the active order: an ordered sequence of lines, unique by line
// identity, plus the currently applied discount. Cart is not safe for
// concurrent use; the Register serializes access.
type Cart struct {
	lines    []Line
	discount Discount
}

// NewCart creates an empty cart with the default discount
func NewCart() *Cart {
	return &Cart{discount: DefaultDiscount()}
}

// AddLine adds a menu item to the cart. If a line for the same menu item
// already exists its quantity is incremented in place, preserving its
// position; otherwise a new line with quantity 1 is appended.
func (c *Cart) AddLine(item *models.MenuItem) {
	for i := range c.lines {
		if c.lines[i].MenuItemID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}

	c.lines = append(c.lines, Line{
		ID:         generateLineID(),
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   1,
	})
}

// UpdateQuantity adjusts a line's quantity by delta. A delta that would
// drop the quantity to zero or below leaves the line unchanged; the line
// is only ever removed via RemoveLine. An unknown line ID is a no-op.
func (c *Cart) UpdateQuantity(lineID string, delta int) {
	for i := range c.lines {
		if c.lines[i].ID != lineID {
			continue
		}
		if newQuantity := c.lines[i].Quantity + delta; newQuantity > 0 {
			c.lines[i].Quantity = newQuantity
		}
		return
	}
}

// RemoveLine removes the line with the given ID; an absent ID is a no-op
func (c *Cart) RemoveLine(lineID string) {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart and resets the discount to its default
func (c *Cart) Clear() {
	c.lines = nil
	c.discount = DefaultDiscount()
}

// Lines returns a copy of the cart's lines in insertion order
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Empty reports whether the cart has no lines
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Discount returns the currently applied discount
func (c *Cart) Discount() Discount {
	return c.discount
}

// SetDiscount replaces the current discount
func (c *Cart) SetDiscount(d Discount) {
	c.discount = d
}

// Totals recomputes the derived amounts from the current lines and
// discount. It is a pure function of cart state.
func (c *Cart) Totals() Totals {
	subtotal := 0.0
	for _, line := range c.lines {
		subtotal += line.Price * float64(line.Quantity)
	}

	discountAmount := c.discount.Amount(subtotal)

	total := subtotal - discountAmount
	if total < 0 {
		total = 0
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
	}
}

func generateLineID() string {
	return fmt.Sprintf("order-item-%d", time.Now().UnixNano())
}
