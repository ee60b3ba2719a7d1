package commands

import (
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/guard"
)

var ErrStartPickingTaskCommandIsNotConstructed = errors.New(
	"StartPickingTaskCommand must be created via NewStartPickingTaskCommand constructor",
)

// StartPickingTaskCommand represents a worker starting their assigned
// picking task.
type StartPickingTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartPickingTaskCommand creates a command to start a picking task.
func NewStartPickingTaskCommand(taskID kernel.UUID) (StartPickingTaskCommand, error) {
	command := StartPickingTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTaskID(taskID); err != nil {
		return StartPickingTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPickingTaskCommand) Validate() error {
	return c.guard.Validate(ErrStartPickingTaskCommandIsNotConstructed)
}

// TaskID returns the picking task to start.
func (c StartPickingTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c *StartPickingTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}
