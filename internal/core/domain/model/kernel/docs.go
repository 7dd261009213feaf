// Package kernel holds the shared value objects of the fulfillment domain:
//   - UUID: identifier of orders, deliveries, actors and events
//   - Money: an amount in integer minor units with half-up rounding
//   - Address: a shipping address snapshot copied into orders
//   - Actor: the (id, role) pair supplied by the identity context
//   - DomainEvent / AggregateRoot: the contract between aggregates and the outbox
//
// All values are immutable and safe for concurrent use.
package kernel
