package commands

import (
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/guard"
)

var (
	ErrReleaseOrderStockCommandIsNotConstructed = errors.New(
		"ReleaseOrderStockCommand must be created via NewReleaseOrderStockCommand constructor",
	)
	ErrReasonIsRequired = errors.New("reason is required")
)

// ReleaseOrderStockCommand represents a request to release every unit still
// reserved for an order, typically on order cancellation. Safe to submit
// multiple times: a second release finds nothing outstanding and does nothing.
type ReleaseOrderStockCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewReleaseOrderStockCommand creates a command to release an order's
// outstanding reservations. Validates that the order ID is valid and a
// release reason is given.
func NewReleaseOrderStockCommand(orderID kernel.UUID, reason string) (ReleaseOrderStockCommand, error) {
	command := ReleaseOrderStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setReason(reason),
	); err != nil {
		return ReleaseOrderStockCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReleaseOrderStockCommandIsNotConstructed if validation fails.
func (c ReleaseOrderStockCommand) Validate() error {
	return c.guard.Validate(ErrReleaseOrderStockCommandIsNotConstructed)
}

// OrderID returns the order whose reservations are released.
func (c ReleaseOrderStockCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the release reason recorded on the ledger movements.
func (c ReleaseOrderStockCommand) Reason() string {
	return c.reason
}

func (c *ReleaseOrderStockCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReleaseOrderStockCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}
