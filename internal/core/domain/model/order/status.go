package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the customer-facing lifecycle state of an order.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Confirmed
	Processing
	OutForDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		Processing:     "Processing",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// legalEdges is the full transition graph, independent of the actor.
func legalEdges() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		Pending:        {Confirmed, Cancelled},
		Confirmed:      {Processing, Cancelled},
		Processing:     {OutForDelivery, Cancelled},
		OutForDelivery: {Delivered},
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
// ("out_for_delivery").
func ParseStatus(s string) (Status, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "")
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.ToLower(name) == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// CanTransitionTo reports whether target is a legal edge from s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range legalEdges()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsCancellable reports whether s is in {Pending, Confirmed, Processing}.
func (s Status) IsCancellable() bool {
	return s.CanTransitionTo(Cancelled)
}

// IsTerminal reports whether s accepts no further manual transition.
func (s Status) IsTerminal() bool {
	return s == OutForDelivery || s == Delivered || s == Cancelled
}
