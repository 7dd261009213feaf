package cart

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// MaxLineQuantity bounds the quantity of a single add or update request.
const MaxLineQuantity = 999

// Cart is the line ledger of a single session.
type Cart struct {
	lines      []Line
	totalItems int
	totalPrice kernel.Money
}

func NewCart() *Cart {
	return &Cart{lines: make([]Line, 0)}
}

// RestoreCart rebuilds a persisted cart. Duplicate products are rejected.
func RestoreCart(lines []Line) (*Cart, error) {
	c := NewCart()
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, dup := seen[l.ProductID()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("lines",
				fmt.Errorf("product %s appears more than once", l.ProductID()))
		}
		seen[l.ProductID()] = struct{}{}
		c.lines = append(c.lines, l)
	}
	c.recalculate()
	return c, nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(productID string) (Line, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

func (c *Cart) TotalItems() int {
	return c.totalItems
}

func (c *Cart) TotalPrice() kernel.Money {
	return c.totalPrice
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// AddItem merges qty into the line of item.ProductID, or appends a new line.
// The resulting quantity is clamped at item.Stock without overflowing, and the line takes the
// latest price, name and stock from item.
func (c *Cart) AddItem(item Item, qty int) error {
	if qty <= 0 || qty > MaxLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, MaxLineQuantity)
	}
	if err := item.validate(); err != nil {
		return err
	}
	if item.Stock <= 0 {
		return errs.NewInsufficientStockError(item.ProductID, qty, 0)
	}

	if i := c.indexOf(item.ProductID); i >= 0 {
		current := min(c.lines[i].quantity, item.Stock)
		c.lines[i] = Line{item: item, quantity: current + min(qty, item.Stock-current)}
	} else {
		c.lines = append(c.lines, Line{item: item, quantity: min(qty, item.Stock)})
	}

	c.recalculate()
	return nil
}

// RemoveItem drops the line of productID. Unknown products are ignored.
func (c *Cart) RemoveItem(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.recalculate()
}

// UpdateQuantity replaces the quantity of an existing line. Quantities above
// the stock snapshot are refused rather than clamped.
func (c *Cart) UpdateQuantity(productID string, qty int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return errs.NewObjectNotFoundError("productId", productID)
	}
	if qty < 1 || qty > MaxLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, MaxLineQuantity)
	}
	if qty > c.lines[i].Stock() {
		return errs.NewInsufficientStockError(productID, qty, c.lines[i].Stock())
	}

	c.lines[i].quantity = qty
	c.recalculate()
	return nil
}

func (c *Cart) Clear() {
	c.lines = c.lines[:0]
	c.recalculate()
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID() == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) recalculate() {
	items := 0
	price := kernel.Zero
	for _, l := range c.lines {
		items += l.quantity
		price = price.Add(l.Total())
	}
	c.totalItems = items
	c.totalPrice = price
}
