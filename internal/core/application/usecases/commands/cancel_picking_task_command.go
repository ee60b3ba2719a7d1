package commands

import (
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/guard"
)

var ErrCancelPickingTaskCommandIsNotConstructed = errors.New(
	"CancelPickingTaskCommand must be created via NewCancelPickingTaskCommand constructor",
)

// CancelPickingTaskCommand represents abandoning a picking task before it
// completes.
type CancelPickingTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID
	reason string

	guard guard.ConstructorGuard
}

// NewCancelPickingTaskCommand creates a command to cancel a picking task.
func NewCancelPickingTaskCommand(taskID kernel.UUID, reason string) (CancelPickingTaskCommand, error) {
	command := CancelPickingTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTaskID(taskID),
		command.setReason(reason),
	); err != nil {
		return CancelPickingTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelPickingTaskCommand) Validate() error {
	return c.guard.Validate(ErrCancelPickingTaskCommandIsNotConstructed)
}

// TaskID returns the picking task to cancel.
func (c CancelPickingTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Reason returns the cancellation reason recorded on the release movements.
func (c CancelPickingTaskCommand) Reason() string {
	return c.reason
}

func (c *CancelPickingTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *CancelPickingTaskCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}
