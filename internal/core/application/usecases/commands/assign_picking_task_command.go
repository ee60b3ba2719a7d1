package commands

import (
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/guard"
)

var (
	ErrAssignPickingTaskCommandIsNotConstructed = errors.New(
		"AssignPickingTaskCommand must be created via NewAssignPickingTaskCommand constructor",
	)
	ErrWorkerIsRequired = errors.New("worker is required")
)

// AssignPickingTaskCommand represents a request to assign a pending picking
// task to a warehouse worker.
type AssignPickingTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID
	worker string

	guard guard.ConstructorGuard
}

// NewAssignPickingTaskCommand creates a command to assign a picking task.
// Validates that the task ID is valid and a worker is named.
func NewAssignPickingTaskCommand(taskID kernel.UUID, worker string) (AssignPickingTaskCommand, error) {
	command := AssignPickingTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTaskID(taskID),
		command.setWorker(worker),
	); err != nil {
		return AssignPickingTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPickingTaskCommand) Validate() error {
	return c.guard.Validate(ErrAssignPickingTaskCommandIsNotConstructed)
}

// TaskID returns the picking task to assign.
func (c AssignPickingTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Worker returns the worker the task is assigned to.
func (c AssignPickingTaskCommand) Worker() string {
	return c.worker
}

func (c *AssignPickingTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *AssignPickingTaskCommand) setWorker(worker string) error {
	if worker == "" {
		return ErrWorkerIsRequired
	}

	c.worker = worker
	return nil
}
