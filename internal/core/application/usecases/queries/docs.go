// Package queries implements the read side of the order service.
//
// Each query is a guarded struct created through its constructor, paired with
// a handler that reads straight from the database with raw SQL. Queries never
// load aggregates through the repository: they project rows into flat
// OrderResponse values, so the read path stays cheap and free of write-side
// invariants.
//
// The one exception to "straight from the database" is
// GetAvailableOrdersQueryHandler, which consults the availability cache
// first. The cache is advisory: a stale answer costs a driver a failed claim
// attempt, never a double assignment.
package queries
