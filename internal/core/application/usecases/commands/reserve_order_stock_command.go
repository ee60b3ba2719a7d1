package commands

import (
	"errors"
	"fmt"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/guard"
)

var (
	ErrReserveOrderStockCommandIsNotConstructed = errors.New(
		"ReserveOrderStockCommand must be created via NewReserveOrderStockCommand constructor",
	)
	ErrReservationLinesAreRequired = errors.New("at least one reservation line is required")
	ErrSKUIsRequired               = errors.New("sku is required")
	ErrQuantityIsInvalid           = errors.New("quantity must be greater than 0")
)

// ReservationLine names one SKU quantity an order needs from one warehouse.
type ReservationLine struct {
	SKU         string
	Quantity    int
	WarehouseID kernel.UUID
}

// Validate checks the line for well-formedness.
func (l ReservationLine) Validate() error {
	if l.SKU == "" {
		return ErrSKUIsRequired
	}
	if l.Quantity <= 0 {
		return ErrQuantityIsInvalid
	}
	return l.WarehouseID.Validate()
}

// ReserveOrderStockCommand represents a request to reserve stock for an order.
// Reservation is all-or-nothing across the lines: either every line is
// reserved or no stock is held.
//
// Example:
//
//	cmd, err := NewReserveOrderStockCommand(orderID, []ReservationLine{
//	    {SKU: "SKU-100", Quantity: 2, WarehouseID: warehouseID},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid reservation request: %w", err)
//	}
//
//	handler := NewReserveOrderStockCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to reserve stock: %w", err)
//	}
type ReserveOrderStockCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	lines   []ReservationLine

	guard guard.ConstructorGuard
}

// NewReserveOrderStockCommand creates a command to reserve stock for an order.
// Validates that the order ID is valid and every line names a SKU with a
// positive quantity. A SKU may appear at most once per warehouse.
func NewReserveOrderStockCommand(orderID kernel.UUID, lines []ReservationLine) (ReserveOrderStockCommand, error) {
	command := ReserveOrderStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setLines(lines),
	); err != nil {
		return ReserveOrderStockCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReserveOrderStockCommandIsNotConstructed if validation fails.
func (c ReserveOrderStockCommand) Validate() error {
	return c.guard.Validate(ErrReserveOrderStockCommandIsNotConstructed)
}

// OrderID returns the order the reservation belongs to.
func (c ReserveOrderStockCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Lines returns a copy of the reservation lines.
func (c ReserveOrderStockCommand) Lines() []ReservationLine {
	return append([]ReservationLine(nil), c.lines...)
}

func (c *ReserveOrderStockCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReserveOrderStockCommand) setLines(lines []ReservationLine) error {
	if len(lines) == 0 {
		return ErrReservationLinesAreRequired
	}

	type lineKey struct {
		warehouseID kernel.UUID
		sku         string
	}
	seen := make(map[lineKey]struct{}, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		key := lineKey{line.WarehouseID, line.SKU}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate reservation line for %s: %w", line.SKU, ErrQuantityIsInvalid)
		}
		seen[key] = struct{}{}
	}

	c.lines = append([]ReservationLine(nil), lines...)
	return nil
}
