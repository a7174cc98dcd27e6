// Package order provides domain entities and business logic for delivery-order
// management in the pedidos system. It implements the Order aggregate root with
// lifecycle management, claim semantics, and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, ownership, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid unique identifier, customer, and customer email
//   - Order status follows a strict graph:
//     PENDING -> ASSIGNED -> IN_TRANSIT -> DELIVERED, with CANCELLED reachable
//     from PENDING and ASSIGNED only
//   - A pending order carries no driver; claiming it assigns exactly one driver
//     and moves it to ASSIGNED in a single step
//   - Only pending orders may be deleted
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
