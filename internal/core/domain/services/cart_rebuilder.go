package services

import (
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/order"
)

// ItemFromProduct is the cart snapshot of a live catalog product.
func ItemFromProduct(p catalog.Product) cart.Item {
	return cart.Item{
		ProductID: p.ID(),
		Name:      p.Name(),
		ImageURL:  p.ImageURL(),
		UnitPrice: p.Price(),
		Stock:     p.Stock(),
	}
}

// CartRebuilder turns a past order back into a cart at today's prices.
type CartRebuilder struct{}

func NewCartRebuilder() CartRebuilder {
	return CartRebuilder{}
}

// Rebuild adds every line of o to a fresh cart using the current price and
// stock from products. Lines whose product is missing or sold out are skipped
// and their product ids returned as dropped; other quantities are clamped at
// the current stock.
func (CartRebuilder) Rebuild(o *order.Order, products map[string]catalog.Product) (*cart.Cart, []string, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}

	c := cart.NewCart()
	var dropped []string
	for _, line := range o.Lines() {
		p, ok := products[line.ProductID()]
		if !ok || !p.InStock() {
			dropped = append(dropped, line.ProductID())
			continue
		}
		if err := c.AddItem(ItemFromProduct(p), line.Quantity()); err != nil {
			return nil, nil, err
		}
	}
	return c, dropped, nil
}
