package commands

import (
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/guard"
)

var ErrCompletePickingTaskCommandIsNotConstructed = errors.New(
	"CompletePickingTaskCommand must be created via NewCompletePickingTaskCommand constructor",
)

// CompletePickingTaskCommand represents closing a picking task after every
// line has been recorded.
type CompletePickingTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePickingTaskCommand creates a command to complete a picking task.
func NewCompletePickingTaskCommand(taskID kernel.UUID) (CompletePickingTaskCommand, error) {
	command := CompletePickingTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTaskID(taskID); err != nil {
		return CompletePickingTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePickingTaskCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickingTaskCommandIsNotConstructed)
}

// TaskID returns the picking task to complete.
func (c CompletePickingTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c *CompletePickingTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}
