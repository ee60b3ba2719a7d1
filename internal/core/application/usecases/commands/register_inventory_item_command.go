package commands

import (
	"errors"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/guard"
)

var ErrRegisterInventoryItemCommandIsNotConstructed = errors.New(
	"RegisterInventoryItemCommand must be created via NewRegisterInventoryItemCommand constructor",
)

// RegisterInventoryItemCommand starts tracking a SKU in a warehouse. The
// item begins with zero stock; on-hand quantity arrives later through
// receiving or an adjustment.
type RegisterInventoryItemCommand struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	sku         string
	location    kernel.Location
	policy      inventory.ReorderPolicy

	guard guard.ConstructorGuard
}

// NewRegisterInventoryItemCommand creates a command to register a SKU at a
// slot location with a reorder policy.
func NewRegisterInventoryItemCommand(
	warehouseID kernel.UUID,
	sku string,
	location kernel.Location,
	policy inventory.ReorderPolicy,
) (RegisterInventoryItemCommand, error) {
	command := RegisterInventoryItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setWarehouseID(warehouseID),
		command.setSKU(sku),
		command.setLocation(location),
		command.setPolicy(policy),
	); err != nil {
		return RegisterInventoryItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterInventoryItemCommand) Validate() error {
	return c.guard.Validate(ErrRegisterInventoryItemCommandIsNotConstructed)
}

// WarehouseID returns the warehouse that will track the SKU.
func (c RegisterInventoryItemCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// SKU returns the SKU to register.
func (c RegisterInventoryItemCommand) SKU() string {
	return c.sku
}

// Location returns the slot assigned to the SKU.
func (c RegisterInventoryItemCommand) Location() kernel.Location {
	return c.location
}

// Policy returns the reorder policy for the SKU.
func (c RegisterInventoryItemCommand) Policy() inventory.ReorderPolicy {
	return c.policy
}

func (c *RegisterInventoryItemCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *RegisterInventoryItemCommand) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}

	c.sku = sku
	return nil
}

func (c *RegisterInventoryItemCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *RegisterInventoryItemCommand) setPolicy(policy inventory.ReorderPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	c.policy = policy
	return nil
}
