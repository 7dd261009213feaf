package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate. Implementations are plain
// structs with JSON tags; the outbox stores them under Name().
type DomainEvent interface {
	EventID() UUID
	Name() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// AggregateRoot is implemented by Order and Delivery. The unit of work drains
// DomainEvents into the outbox on commit.
type AggregateRoot interface {
	ID() UUID
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
