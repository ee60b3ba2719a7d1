package commands

import (
	"errors"
	"fmt"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/picking"
	"warehousing/internal/pkg/guard"
)

var (
	ErrRecordPickLineCommandIsNotConstructed = errors.New(
		"RecordPickLineCommand must be created via NewRecordPickLineCommand constructor",
	)
	ErrLineOutcomeIsInvalid = errors.New("line outcome must be Picked, Short, or Damaged")
)

// RecordPickLineCommand represents a worker recording the outcome of one
// task line: fully picked, short picked, or found damaged.
type RecordPickLineCommand struct { //nolint:recvcheck //using for validation
	taskID         kernel.UUID
	sku            string
	quantityPicked int
	outcome        picking.LineStatus

	guard guard.ConstructorGuard
}

// NewRecordPickLineCommand creates a command to record a pick line outcome.
// Validates that the outcome is terminal and the picked quantity is not
// negative; the aggregate enforces the outcome-specific quantity rules.
func NewRecordPickLineCommand(
	taskID kernel.UUID,
	sku string,
	quantityPicked int,
	outcome picking.LineStatus,
) (RecordPickLineCommand, error) {
	command := RecordPickLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTaskID(taskID),
		command.setSKU(sku),
		command.setQuantityPicked(quantityPicked),
		command.setOutcome(outcome),
	); err != nil {
		return RecordPickLineCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPickLineCommand) Validate() error {
	return c.guard.Validate(ErrRecordPickLineCommandIsNotConstructed)
}

// TaskID returns the picking task the line belongs to.
func (c RecordPickLineCommand) TaskID() kernel.UUID {
	return c.taskID
}

// SKU returns the line's SKU.
func (c RecordPickLineCommand) SKU() string {
	return c.sku
}

// QuantityPicked returns the quantity the worker actually picked.
func (c RecordPickLineCommand) QuantityPicked() int {
	return c.quantityPicked
}

// Outcome returns the terminal status the line is recorded with.
func (c RecordPickLineCommand) Outcome() picking.LineStatus {
	return c.outcome
}

func (c *RecordPickLineCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *RecordPickLineCommand) setSKU(sku string) error {
	if sku == "" {
		return ErrSKUIsRequired
	}

	c.sku = sku
	return nil
}

func (c *RecordPickLineCommand) setQuantityPicked(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("picked quantity %d: %w", quantity, ErrQuantityIsInvalid)
	}

	c.quantityPicked = quantity
	return nil
}

func (c *RecordPickLineCommand) setOutcome(outcome picking.LineStatus) error {
	if !outcome.IsTerminal() {
		return ErrLineOutcomeIsInvalid
	}

	c.outcome = outcome
	return nil
}
