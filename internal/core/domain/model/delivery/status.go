package delivery

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Assigned
	Accepted
	PickedUp
	OnTheWay
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Assigned:  "Assigned",
		Accepted:  "Accepted",
		PickedUp:  "PickedUp",
		OnTheWay:  "OnTheWay",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus accepts the String form case-insensitively, plus snake_case
// ("picked_up").
func ParseStatus(s string) (Status, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "")
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.ToLower(name) == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Next returns the single status that follows s, or false when s is archived.
func (s Status) Next() (Status, bool) {
	//nolint:exhaustive // archived statuses have no successor
	switch s {
	case Assigned:
		return Accepted, true
	case Accepted:
		return PickedUp, true
	case PickedUp:
		return OnTheWay, true
	case OnTheWay:
		return Delivered, true
	default:
		return Unknown, false
	}
}

// IsArchived reports whether the delivery is read-only.
func (s Status) IsArchived() bool {
	return s == Delivered || s == Cancelled
}

// IsCancellable reports whether the goods are still at the store.
func (s Status) IsCancellable() bool {
	return s == Assigned || s == Accepted
}

// InTransit reports whether the goods have left the store.
func (s Status) InTransit() bool {
	return s == PickedUp || s == OnTheWay
}
