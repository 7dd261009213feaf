package order

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Line is an immutable purchase record. Its price is the price at purchase
// time and is never re-read from the catalog.
type Line struct {
	productID string
	name      string
	quantity  int
	unitPrice kernel.Money
}

func NewLine(productID, name string, quantity int, unitPrice kernel.Money) (Line, error) {
	var errList []error
	if strings.TrimSpace(productID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("productId"))
	}
	if quantity < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "stock"))
	}
	if err := unitPrice.NonNegative("unitPrice"); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return Line{}, err
	}
	return Line{productID: productID, name: name, quantity: quantity, unitPrice: unitPrice}, nil
}

// LinesFromCart freezes the current cart lines.
func LinesFromCart(c *cart.Cart) ([]Line, error) {
	if c == nil || c.IsEmpty() {
		return nil, errs.NewValueIsRequiredError("cart")
	}
	lines := make([]Line, 0, len(c.Lines()))
	for _, cl := range c.Lines() {
		l, err := NewLine(cl.ProductID(), cl.Name(), cl.Quantity(), cl.UnitPrice())
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func (l Line) ProductID() string { return l.productID }
func (l Line) Name() string { return l.name }
func (l Line) Quantity() int { return l.quantity }
func (l Line) UnitPrice() kernel.Money { return l.unitPrice }

func (l Line) Total() kernel.Money {
	return l.unitPrice.Mul(l.quantity)
}
