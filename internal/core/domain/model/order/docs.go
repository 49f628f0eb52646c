// Package order provides domain entities and business logic for client orders
// in the fulfillment system. It implements the Order aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, and lifecycle
//   - OrderItem: A product line of an order, the unit of stock allocation
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid unique identifier, client location, and at
//     least one item with a positive quantity
//   - Order status follows a defined workflow: Created -> Allocated -> Completed
//   - Orders are allocated atomically; a partially reservable order stays Created
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
