// Package catalog holds the product snapshot read from the external catalog.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errs.NewValueIsRequiredError("product must be created via NewProduct")

// Product is the live catalog view of an item: current price, current stock
// and the store owner selling it.
type Product struct { //nolint:recvcheck //using for validation
	id      string
	name    string
	image   string
	price   kernel.Money
	stock   int
	ownerID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewProduct(id, name, imageURL string, price kernel.Money, stock int, ownerID kernel.UUID) (Product, error) {
	p := Product{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
		p.setStock(stock),
		ownerID.Validate(),
	); err != nil {
		return Product{}, err
	}
	p.ownerID = ownerID
	p.image = strings.TrimSpace(imageURL)

	return p, nil
}

func (p Product) Validate() error {
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p Product) ID() string { return p.id }
func (p Product) Name() string { return p.name }
func (p Product) ImageURL() string { return p.image }
func (p Product) Price() kernel.Money { return p.price }
func (p Product) Stock() int { return p.stock }
func (p Product) OwnerID() kernel.UUID { return p.ownerID }
func (p Product) InStock() bool { return p.stock > 0 }

func (p *Product) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.NonNegative("price"); err != nil {
		return err
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}
