package errs

import (
	"fmt"
)

// InvalidTransitionError indicates that a requested status change is not an edge
// of the order lifecycle graph.
type InvalidTransitionError struct {
	From  string
	To    string
	Cause error
}

// NewInvalidTransitionError creates an InvalidTransitionError for the rejected edge.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// NewInvalidTransitionErrorWithCause creates an InvalidTransitionError wrapping an underlying cause.
func NewInvalidTransitionErrorWithCause(from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s -> %s (cause: %s)", ErrInvalidTransition, e.From, e.To, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InvalidStateError indicates that an operation is not permitted while the order
// is in its current status, e.g. deleting an order that is no longer pending.
type InvalidStateError struct {
	Operation string
	Status    string
	Cause     error
}

// NewInvalidStateError creates an InvalidStateError for the rejected operation.
func NewInvalidStateError(operation, status string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Status: status}
}

// NewInvalidStateErrorWithCause creates an InvalidStateError wrapping an underlying cause.
func NewInvalidStateErrorWithCause(operation, status string, cause error) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Status: status, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s is not allowed in status %s (cause: %s)",
			ErrInvalidState, e.Operation, e.Status, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s is not allowed in status %s", ErrInvalidState, e.Operation, e.Status))
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// AlreadyClaimedError indicates that a claim attempt lost the race for an order,
// or targeted an order that left the pending status earlier. This is an expected
// outcome under contention, not a system fault.
type AlreadyClaimedError struct {
	OrderID any
	Cause   error
}

// NewAlreadyClaimedError creates an AlreadyClaimedError for the contested order.
func NewAlreadyClaimedError(orderID any) *AlreadyClaimedError {
	return &AlreadyClaimedError{OrderID: orderID}
}

// NewAlreadyClaimedErrorWithCause creates an AlreadyClaimedError wrapping an underlying cause.
func NewAlreadyClaimedErrorWithCause(orderID any, cause error) *AlreadyClaimedError {
	return &AlreadyClaimedError{OrderID: orderID, Cause: cause}
}

func (e *AlreadyClaimedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrAlreadyClaimed, e.OrderID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrAlreadyClaimed, e.OrderID))
}

func (e *AlreadyClaimedError) Unwrap() error {
	return ErrAlreadyClaimed
}

// UnauthorizedError indicates that the caller lacks the rights for an operation.
type UnauthorizedError struct {
	CallerID any
	Action   string
	Cause    error
}

// NewUnauthorizedError creates an UnauthorizedError for the rejected action.
func NewUnauthorizedError(callerID any, action string) *UnauthorizedError {
	return &UnauthorizedError{CallerID: callerID, Action: action}
}

// NewUnauthorizedErrorWithCause creates an UnauthorizedError wrapping an underlying cause.
func NewUnauthorizedErrorWithCause(callerID any, action string, cause error) *UnauthorizedError {
	return &UnauthorizedError{CallerID: callerID, Action: action, Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: caller %s may not %s (cause: %s)",
			ErrUnauthorized, e.CallerID, e.Action, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: caller %s may not %s", ErrUnauthorized, e.CallerID, e.Action))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// VersionConflictError indicates that a conditional write was rejected because
// the stored record no longer carries the expected version.
type VersionConflictError struct {
	OrderID         any
	ExpectedVersion int64
	Cause           error
}

// NewVersionConflictError creates a VersionConflictError for the rejected write.
func NewVersionConflictError(orderID any, expectedVersion int64) *VersionConflictError {
	return &VersionConflictError{OrderID: orderID, ExpectedVersion: expectedVersion}
}

// NewVersionConflictErrorWithCause creates a VersionConflictError wrapping an underlying cause.
func NewVersionConflictErrorWithCause(orderID any, expectedVersion int64, cause error) *VersionConflictError {
	return &VersionConflictError{OrderID: orderID, ExpectedVersion: expectedVersion, Cause: cause}
}

func (e *VersionConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s at expected version %d (cause: %s)",
			ErrVersionConflict, e.OrderID, e.ExpectedVersion, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s at expected version %d", ErrVersionConflict, e.OrderID, e.ExpectedVersion))
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
