// Package order implements the Order Lifecycle Manager: the Order aggregate
// root, its status machine and its append-only timeline.
//
// Legal status edges:
//
//	Pending ──> Confirmed ──> Processing ──> OutForDelivery ──> Delivered
//	   │            │              │
//	   └────────────┴──────────────┴──> Cancelled
//
// Authorization is checked inside Transition, never by callers:
//   - only the owning store moves Pending -> Confirmed -> Processing
//   - only the order's customer or owning store may cancel
//   - OutForDelivery and Delivered are reached only through the system actor,
//     projected from delivery progress
//
// OutForDelivery, Delivered and Cancelled are terminal for every non-system
// actor. Every accepted transition appends a timeline entry and records a
// StatusChangedEvent.
package order
