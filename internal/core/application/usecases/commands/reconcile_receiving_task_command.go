package commands

import (
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/guard"
)

var ErrReconcileReceivingTaskCommandIsNotConstructed = errors.New(
	"ReconcileReceivingTaskCommand must be created via NewReconcileReceivingTaskCommand constructor",
)

// ReconcileReceivingTaskCommand represents closing a receiving task by
// comparing what was announced against what actually arrived.
type ReconcileReceivingTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReconcileReceivingTaskCommand creates a command to reconcile a receiving task.
func NewReconcileReceivingTaskCommand(taskID kernel.UUID) (ReconcileReceivingTaskCommand, error) {
	command := ReconcileReceivingTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTaskID(taskID); err != nil {
		return ReconcileReceivingTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileReceivingTaskCommand) Validate() error {
	return c.guard.Validate(ErrReconcileReceivingTaskCommandIsNotConstructed)
}

// TaskID returns the receiving task to reconcile.
func (c ReconcileReceivingTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c *ReconcileReceivingTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}
