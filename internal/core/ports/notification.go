package ports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// NotificationKind is the closed set of lifecycle notifications.
type NotificationKind int

const (
	NotificationUnknown NotificationKind = iota
	OrderPlaced
	OrderStatusChanged
	DeliveryAssigned
	DeliveryStatusChanged
)

func getNotificationKindStrings() map[NotificationKind]string {
	return map[NotificationKind]string{
		NotificationUnknown:   "unknown",
		OrderPlaced:           "order.placed",
		OrderStatusChanged:    "order.status_changed",
		DeliveryAssigned:      "delivery.assigned",
		DeliveryStatusChanged: "delivery.status_changed",
	}
}

func (k NotificationKind) String() string {
	if s, ok := getNotificationKindStrings()[k]; ok {
		return s
	}
	return "unknown"
}

// ParseNotificationKind maps a domain event name onto its kind.
func ParseNotificationKind(name string) (NotificationKind, error) {
	for kind, s := range getNotificationKindStrings() {
		if kind != NotificationUnknown && s == name {
			return kind, nil
		}
	}
	return NotificationUnknown, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a notification kind", name))
}

// Notification is a lifecycle event as handed to the dispatcher. Payload is
// the JSON form of the domain event of Kind.
type Notification struct {
	ID          kernel.UUID
	Kind        NotificationKind
	AggregateID kernel.UUID
	OccurredAt  time.Time
	Payload     json.RawMessage
}

// NotificationFromEvent serializes a domain event.
func NotificationFromEvent(event kernel.DomainEvent) (Notification, error) {
	kind, err := ParseNotificationKind(event.Name())
	if err != nil {
		return Notification{}, err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return Notification{}, fmt.Errorf("marshal %s: %w", event.Name(), err)
	}
	return Notification{
		ID:          event.EventID(),
		Kind:        kind,
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt(),
		Payload:     payload,
	}, nil
}

// NotificationDispatcher is the fire-and-forget sink for lifecycle events.
// The core never waits on it; the relay job retries failed dispatches.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}
