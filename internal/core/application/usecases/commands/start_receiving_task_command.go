package commands

import (
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/guard"
)

var ErrStartReceivingTaskCommandIsNotConstructed = errors.New(
	"StartReceivingTaskCommand must be created via NewStartReceivingTaskCommand constructor",
)

// StartReceivingTaskCommand represents receiving staff starting work on an
// arrived delivery.
type StartReceivingTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartReceivingTaskCommand creates a command to start a receiving task.
func NewStartReceivingTaskCommand(taskID kernel.UUID) (StartReceivingTaskCommand, error) {
	command := StartReceivingTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTaskID(taskID); err != nil {
		return StartReceivingTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartReceivingTaskCommand) Validate() error {
	return c.guard.Validate(ErrStartReceivingTaskCommandIsNotConstructed)
}

// TaskID returns the receiving task to start.
func (c StartReceivingTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c *StartReceivingTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}
