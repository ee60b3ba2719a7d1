package commands

import (
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/guard"
)

var (
	ErrAdjustStockCommandIsNotConstructed = errors.New(
		"AdjustStockCommand must be created via NewAdjustStockCommand constructor",
	)
	ErrDeltaIsInvalid        = errors.New("delta must not be zero")
	ErrPerformedByIsRequired = errors.New("performedBy is required")
)

// AdjustStockCommand represents a manual stock correction after a cycle
// count, damage write-off, or similar finding.
type AdjustStockCommand struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	sku         string
	delta       int
	reason      string
	performedBy string

	guard guard.ConstructorGuard
}

// NewAdjustStockCommand creates a command to adjust stock by a signed delta.
// Validates that the delta is non-zero and both a reason and the acting
// person are given; the aggregate enforces the resulting level is legal.
func NewAdjustStockCommand(
	warehouseID kernel.UUID,
	sku string,
	delta int,
	reason, performedBy string,
) (AdjustStockCommand, error) {
	command := AdjustStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setWarehouseID(warehouseID),
		command.setSKU(sku),
		command.setDelta(delta),
		command.setReason(reason),
		command.setPerformedBy(performedBy),
	); err != nil {
		return AdjustStockCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AdjustStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustStockCommandIsNotConstructed)
}

// WarehouseID returns the warehouse holding the adjusted SKU.
func (c AdjustStockCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// SKU returns the adjusted SKU.
func (c AdjustStockCommand) SKU() string {
	return c.sku
}

// Delta returns the signed on-hand correction.
func (c AdjustStockCommand) Delta() int {
	return c.delta
}

// Reason returns the correction reason recorded on the ledger movement.
func (c AdjustStockCommand) Reason() string {
	return c.reason
}

// PerformedBy returns who performed the correction.
func (c AdjustStockCommand) PerformedBy() string {
	return c.performedBy
}

func (c *AdjustStockCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *AdjustStockCommand) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}

	c.sku = sku
	return nil
}

func (c *AdjustStockCommand) setDelta(delta int) error {
	if delta == 0 {
		return ErrDeltaIsInvalid
	}

	c.delta = delta
	return nil
}

func (c *AdjustStockCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}

func (c *AdjustStockCommand) setPerformedBy(performedBy string) error {
	if performedBy == "" {
		return ErrPerformedByIsRequired
	}

	c.performedBy = performedBy
	return nil
}
