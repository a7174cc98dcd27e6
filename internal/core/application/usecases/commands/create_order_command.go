package commands

import (
	"errors"
	"net/mail"

	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/pkg/errs"
	"pedidos/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's request to create a new delivery
// order. Encapsulates the order identity, the requesting customer, and the
// delivery details.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, "cliente@example.com",
//	    "2x pizza", "Rua das Flores 123")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, cache)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	customerEmail string
	description   string
	destination   string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates identities, the email address, and that description and
// destination are present. Returns a joined error listing every failure.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	customerEmail, description, destination string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setCustomerEmail(customerEmail),
		cmd.setDescription(description),
		cmd.setDestination(destination),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the requesting customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CustomerEmail returns the requester's contact address.
func (c CreateOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// Description returns the order contents.
func (c CreateOrderCommand) Description() string {
	return c.description
}

// Destination returns the delivery address.
func (c CreateOrderCommand) Destination() string {
	return c.destination
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setCustomerEmail(customerEmail string) error {
	if customerEmail == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	if _, err := mail.ParseAddress(customerEmail); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerEmail", err)
	}
	c.customerEmail = customerEmail
	return nil
}

func (c *CreateOrderCommand) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	c.description = description
	return nil
}

func (c *CreateOrderCommand) setDestination(destination string) error {
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	c.destination = destination
	return nil
}
