// Package services provides domain services that coordinate business operations
// spanning more than one aggregate or value object.
//
// The package includes:
//   - FulfillmentCoordinator: creates deliveries for orders and projects delivery
//     progress onto the order status machine
//   - PriceQuoter: prices a cart with flat shipping and an optional coupon
//   - CartRebuilder: rebuilds a cart from a past order against the live catalog
//
// Services are stateless and never persist anything; command handlers load the
// aggregates, call a service and commit the result in one unit of work.
package services
