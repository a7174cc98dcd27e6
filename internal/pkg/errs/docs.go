// Package errs provides standardized error types for the pedidos application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes general-purpose error kinds:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//
// and the order-lifecycle taxonomy surfaced to API clients:
//   - InvalidTransitionError: For status changes outside the lifecycle graph
//   - InvalidStateError: For operations forbidden in the current status
//   - AlreadyClaimedError: For lost claim races
//   - UnauthorizedError: For callers lacking rights
//   - VersionConflictError: For rejected conditional writes
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrAlreadyClaimed)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify by sentinel
//
// The HTTP boundary relies on this classification to map each failure to
// a specific response code instead of collapsing everything to 500.
package errs
