package commands

import (
	"errors"
	"fmt"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/receiving"
	"warehousing/internal/pkg/guard"
)

var ErrRecordActualItemCommandIsNotConstructed = errors.New(
	"RecordActualItemCommand must be created via NewRecordActualItemCommand constructor",
)

// RecordActualItemCommand represents receiving staff recording one arrived
// batch of units with their condition.
type RecordActualItemCommand struct { //nolint:recvcheck //using for validation
	taskID    kernel.UUID
	sku       string
	quantity  int
	condition receiving.Condition

	guard guard.ConstructorGuard
}

// NewRecordActualItemCommand creates a command to record an arrived batch.
func NewRecordActualItemCommand(
	taskID kernel.UUID,
	sku string,
	quantity int,
	condition receiving.Condition,
) (RecordActualItemCommand, error) {
	command := RecordActualItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTaskID(taskID),
		command.setSKU(sku),
		command.setQuantity(quantity),
		command.setCondition(condition),
	); err != nil {
		return RecordActualItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordActualItemCommand) Validate() error {
	return c.guard.Validate(ErrRecordActualItemCommandIsNotConstructed)
}

// TaskID returns the receiving task the batch belongs to.
func (c RecordActualItemCommand) TaskID() kernel.UUID {
	return c.taskID
}

// SKU returns the batch's SKU.
func (c RecordActualItemCommand) SKU() string {
	return c.sku
}

// Quantity returns the number of arrived units in the batch.
func (c RecordActualItemCommand) Quantity() int {
	return c.quantity
}

// Condition returns the condition the units arrived in.
func (c RecordActualItemCommand) Condition() receiving.Condition {
	return c.condition
}

func (c *RecordActualItemCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *RecordActualItemCommand) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}

	c.sku = sku
	return nil
}

func (c *RecordActualItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("batch quantity %d: %w", quantity, ErrQuantityIsInvalid)
	}

	c.quantity = quantity
	return nil
}

func (c *RecordActualItemCommand) setCondition(condition receiving.Condition) error {
	if err := condition.Validate(); err != nil {
		return err
	}

	c.condition = condition
	return nil
}
