package commands

import (
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/receiving"
	"warehousing/internal/pkg/guard"
)

var (
	ErrCreateReceivingTaskCommandIsNotConstructed = errors.New(
		"CreateReceivingTaskCommand must be created via NewCreateReceivingTaskCommand constructor",
	)
	ErrSupplierIsRequired       = errors.New("supplier is required")
	ErrExpectedLinesAreRequired = errors.New("at least one expected line is required")
)

// CreateReceivingTaskCommand represents registering an announced inbound
// delivery as a pending receiving task.
type CreateReceivingTaskCommand struct { //nolint:recvcheck //using for validation
	taskID      kernel.UUID
	warehouseID kernel.UUID
	supplier    string
	expected    []receiving.ExpectedLine

	guard guard.ConstructorGuard
}

// NewCreateReceivingTaskCommand creates a command to register an inbound delivery.
// Validates identifiers and that the supplier announced at least one line;
// per-line validation happens in the aggregate constructor.
func NewCreateReceivingTaskCommand(
	taskID, warehouseID kernel.UUID,
	supplier string,
	expected []receiving.ExpectedLine,
) (CreateReceivingTaskCommand, error) {
	command := CreateReceivingTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTaskID(taskID),
		command.setWarehouseID(warehouseID),
		command.setSupplier(supplier),
		command.setExpected(expected),
	); err != nil {
		return CreateReceivingTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateReceivingTaskCommand) Validate() error {
	return c.guard.Validate(ErrCreateReceivingTaskCommandIsNotConstructed)
}

// TaskID returns the identifier for the new receiving task.
func (c CreateReceivingTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// WarehouseID returns the warehouse receiving the delivery.
func (c CreateReceivingTaskCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// Supplier returns the announcing supplier.
func (c CreateReceivingTaskCommand) Supplier() string {
	return c.supplier
}

// Expected returns a copy of the announced lines.
func (c CreateReceivingTaskCommand) Expected() []receiving.ExpectedLine {
	return append([]receiving.ExpectedLine(nil), c.expected...)
}

func (c *CreateReceivingTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *CreateReceivingTaskCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *CreateReceivingTaskCommand) setSupplier(supplier string) error {
	if supplier == "" {
		return ErrSupplierIsRequired
	}

	c.supplier = supplier
	return nil
}

func (c *CreateReceivingTaskCommand) setExpected(expected []receiving.ExpectedLine) error {
	if len(expected) == 0 {
		return ErrExpectedLinesAreRequired
	}

	c.expected = append([]receiving.ExpectedLine(nil), expected...)
	return nil
}
