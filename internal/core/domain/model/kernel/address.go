package kernel

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is a shipping address snapshot. Orders copy it by value, so later
// edits in the customer's address book never change a placed order.
type Address struct { //nolint:recvcheck //using for validation
	recipient string
	street    string
	city      string
	zip       string
	phone     string
	guard     guard.ConstructorGuard
}

// NewAddress requires every field. Surrounding whitespace is trimmed.
func NewAddress(recipient, street, city, zip, phone string) (Address, error) {
	addr := Address{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		addr.setField(&addr.recipient, "recipient", recipient),
		addr.setField(&addr.street, "street", street),
		addr.setField(&addr.city, "city", city),
		addr.setField(&addr.zip, "zip", zip),
		addr.setField(&addr.phone, "phone", phone),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Recipient() string { return a.recipient }
func (a Address) Street() string { return a.street }
func (a Address) City() string { return a.city }
func (a Address) Zip() string { return a.zip }
func (a Address) Phone() string { return a.phone }

func (a Address) String() string {
	return a.recipient + ", " + a.street + ", " + a.zip + " " + a.city
}

func (a Address) IsEqual(other Address) bool {
	return a == other
}

func (a *Address) setField(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}
