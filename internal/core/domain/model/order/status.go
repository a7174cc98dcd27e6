package order

import (
	"fmt"

	"pedidos/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed set of edges so orders can never
// reach an illegal state regardless of which boundary requests the change.
//
// State transitions:
//
//	PENDING ──> ASSIGNED ──> IN_TRANSIT ──> DELIVERED
//	   │            │
//	   └────────────┴──> CANCELLED
//
// DELIVERED and CANCELLED are terminal. The PENDING -> ASSIGNED edge is
// reserved for the claim path and is rejected by TransitionTo.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: the order awaits a driver.
	// Only pending orders can be claimed or deleted.
	StatusPending

	// StatusAssigned indicates exactly one driver has claimed the order.
	StatusAssigned

	// StatusInTransit indicates the assigned driver is delivering the order.
	StatusInTransit

	// StatusDelivered indicates the order reached its destination. Terminal.
	StatusDelivered

	// StatusCancelled indicates the order was abandoned before delivery. Terminal.
	StatusCancelled
)

// getStatusStrings returns the wire names of all Status values, including
// the invalid zero value for display purposes.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "UNKNOWN",
		StatusPending:   "PENDING",
		StatusAssigned:  "ASSIGNED",
		StatusInTransit: "IN_TRANSIT",
		StatusDelivered: "DELIVERED",
		StatusCancelled: "CANCELLED",
	}
}

// getTransitionGraph returns the set of legal status edges. Centralizing the
// graph here is what keeps every mutation path honest: TransitionTo consults
// it and nothing else decides legality.
func getTransitionGraph() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusAssigned, StatusCancelled},
		StatusAssigned:  {StatusInTransit, StatusCancelled},
		StatusInTransit: {StatusDelivered},
	}
}

// ParseStatus converts a wire name ("PENDING", "ASSIGNED", ...) into a Status.
// Returns an error for unrecognized input.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value belongs to the defined set.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if s < StatusPending || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("PENDING", "IN_TRANSIT", ...),
// or "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the edge s -> next is in the lifecycle graph.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitionGraph()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the status along a graph edge requested through the
// status-update path. The PENDING -> ASSIGNED edge is deliberately rejected
// here: assignment happens only through the claim path, which also records
// the winning driver.
//
// Returns:
//   - (next, nil) for a legal transition
//   - (0, *errs.InvalidTransitionError) otherwise
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if next == StatusAssigned || !s.CanTransitionTo(next) {
		return 0, errs.NewInvalidTransitionError(s.String(), next.String())
	}

	return next, nil
}

// Assign transitions the status to ASSIGNED along the claim path.
//
// Valid transitions:
//   - PENDING -> ASSIGNED (the one successful claim)
//
// Any other starting status means the order was already claimed, cancelled,
// or delivered, so the claim loses.
func (s Status) Assign() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewInvalidTransitionError(s.String(), StatusAssigned.String())
	}

	return StatusAssigned, nil
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver assignment.
//
// Business rules:
//   - Pending orders must not have a driver
//   - Assigned, in-transit, and delivered orders must have a driver
//   - Cancelled orders may or may not have one, depending on whether they
//     were cancelled before or after a claim
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if s == StatusPending && hasDriver {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must not have a driver", s))
	}

	if !hasDriver && (s == StatusAssigned || s == StatusInTransit || s == StatusDelivered) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must have a driver", s))
	}

	return nil
}
