package order

import (
	"errors"
	"net/mail"
	"time"

	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// initialVersion is the optimistic-concurrency token of a freshly created order.
const initialVersion int64 = 1

// Order represents a delivery order in the system. It is the aggregate root
// that manages the order lifecycle from creation by a customer through a
// driver claim to delivery or cancellation.
//
// Order maintains these invariants:
//   - Identity and customer fields are immutable after creation
//   - A pending order has no driver; a claimed order has exactly one
//   - Status transitions follow the lifecycle graph in Status
//   - The version token increments on every mutation, so two writers can
//     never both succeed against the same stored version
//
// The struct uses private fields to ensure encapsulation; mutation happens
// only through Claim, TransitionTo, and the constructors.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the requesting customer
	customerID kernel.UUID

	// customerEmail is the requester's contact address
	customerEmail string

	// description is the customer-provided summary of the order contents
	description string

	// destination is the delivery address
	destination string

	// driverID is the claiming driver's ID (nil while pending)
	driverID *kernel.UUID

	// status is the current state in the order lifecycle
	status Status

	// createdAt is set once at creation
	createdAt time.Time

	// updatedAt advances on every mutation
	updatedAt time.Time

	// version is the optimistic-concurrency token checked by conditional writes
	version int64

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new pending Order with no driver assigned. This is the
// only way to create a fresh order, ensuring all business invariants hold.
//
// Parameters:
//   - id: unique identifier for the order
//   - customerID: the requesting customer's identifier
//   - customerEmail: the requester's contact address (must parse as an address)
//   - description: free-text order contents (required)
//   - destination: delivery address (required)
//
// The new order starts in StatusPending at version 1 with createdAt and
// updatedAt set to the current UTC time.
func NewOrder(id, customerID kernel.UUID, customerEmail, description, destination string) (*Order, error) {
	now := time.Now().UTC()

	order := &Order{
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		version:       initialVersion,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setCustomerEmail(customerEmail),
		order.setDescription(description),
		order.setDestination(destination),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persisted state without resetting
// timestamps or version. It revalidates every invariant, including the
// status/driver consistency rule, so corrupt rows fail loudly instead of
// producing an illegal aggregate.
func RestoreOrder(
	id, customerID kernel.UUID,
	customerEmail, description, destination string,
	driverID *kernel.UUID,
	status Status,
	createdAt, updatedAt time.Time,
	version int64,
) (*Order, error) {
	order := &Order{
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setCustomerEmail(customerEmail),
		order.setDescription(description),
		order.setDestination(destination),
		status.Validate(),
		status.ValidateCanHaveDriver(driverID != nil),
	); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		driver := *driverID
		order.driverID = &driver
	}

	if version < initialVersion {
		return nil, errs.NewVersionIsInvalidError("version",
			errors.New("version must be at least 1"))
	}

	return order, nil
}

// Validate ensures the Order instance was created through a constructor.
// Call this when accepting aggregates across package boundaries.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the requesting customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CustomerEmail returns the requester's contact address.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// Description returns the customer-provided order contents.
func (o *Order) Description() string {
	return o.description
}

// Destination returns the delivery address.
func (o *Order) Destination() string {
	return o.destination
}

// Driver returns the claiming driver's ID, or nil while the order is pending.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the optimistic-concurrency token. The store's conditional
// write succeeds only when the persisted record still carries the version the
// aggregate was loaded with.
func (o *Order) Version() int64 {
	return o.version
}

// IsAvailableForClaiming reports whether a driver could claim the order right
// now. Advisory only: the answer may be stale by the time a claim commits.
func (o *Order) IsAvailableForClaiming() bool {
	return o.status == StatusPending
}

// CanBeDeleted reports whether the order may be removed. Only pending orders
// qualify; anything later in the lifecycle is part of the delivery record.
func (o *Order) CanBeDeleted() bool {
	return o.status == StatusPending
}

// Claim assigns the order to the given driver, moving it from PENDING to
// ASSIGNED in a single step. A driver is set exactly once: claiming any
// order that already left PENDING fails with *errs.AlreadyClaimedError.
//
// The caller must persist the change with a conditional write on the version
// the aggregate was loaded with; Claim alone does not arbitrate races.
func (o *Order) Claim(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.driverID != nil || o.status != StatusPending {
		return errs.NewAlreadyClaimedError(o.id.String())
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return errs.NewAlreadyClaimedErrorWithCause(o.id.String(), err)
	}

	o.status = newStatus
	o.driverID = &driverID
	o.touch()
	return nil
}

// TransitionTo moves the order along a lifecycle edge requested through the
// status-update path. The PENDING -> ASSIGNED edge is rejected here; claims
// go through Claim.
//
// Returns *errs.InvalidTransitionError when the requested edge is not in
// the graph.
func (o *Order) TransitionTo(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// touch records a mutation: updatedAt advances and the version bumps so the
// next conditional write targets the pre-mutation version.
func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
	o.version++
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the requesting customer.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

// setCustomerEmail validates and sets the requester's contact address.
func (o *Order) setCustomerEmail(customerEmail string) error {
	if customerEmail == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	if _, err := mail.ParseAddress(customerEmail); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerEmail", err)
	}
	o.customerEmail = customerEmail
	return nil
}

// setDescription validates and sets the order contents.
func (o *Order) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	o.description = description
	return nil
}

// setDestination validates and sets the delivery address.
func (o *Order) setDestination(destination string) error {
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	o.destination = destination
	return nil
}
