package cart

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is the catalog snapshot a line is built from.
type Item struct {
	ProductID string
	Name      string
	ImageURL  string
	UnitPrice kernel.Money
	Stock     int
}

func (i Item) validate() error {
	var errList []error
	if strings.TrimSpace(i.ProductID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("productId"))
	}
	if err := i.UnitPrice.NonNegative("unitPrice"); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

// Line is one product in the cart. Quantity is always within [1, Stock].
type Line struct {
	item     Item
	quantity int
}

// RestoreLine rebuilds a persisted line, enforcing the quantity bounds.
func RestoreLine(item Item, quantity int) (Line, error) {
	if err := item.validate(); err != nil {
		return Line{}, err
	}
	if quantity < 1 || quantity > item.Stock {
		return Line{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, item.Stock)
	}
	return Line{item: item, quantity: quantity}, nil
}

func (l Line) ProductID() string {
	return l.item.ProductID
}

func (l Line) Name() string {
	return l.item.Name
}

func (l Line) ImageURL() string {
	return l.item.ImageURL
}

func (l Line) UnitPrice() kernel.Money {
	return l.item.UnitPrice
}

func (l Line) Stock() int {
	return l.item.Stock
}

func (l Line) Quantity() int {
	return l.quantity
}

// Total is UnitPrice x Quantity.
func (l Line) Total() kernel.Money {
	return l.item.UnitPrice.Mul(l.quantity)
}
