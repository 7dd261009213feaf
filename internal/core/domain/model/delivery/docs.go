// Package delivery holds the Delivery aggregate: the courier-facing record
// created once an order is Processing.
//
// A delivery moves strictly forward:
//
//	Assigned -> Accepted -> PickedUp -> OnTheWay -> Delivered
//
// and may be cancelled from Assigned or Accepted only. Only the assigned agent
// advances it; only the order's customer or owner cancels it. Delivered and
// Cancelled deliveries are archived and reject every further change.
//
// Projection of delivery progress onto the order lives in the services
// package (FulfillmentCoordinator).
package delivery
