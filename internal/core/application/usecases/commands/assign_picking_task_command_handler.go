package commands

import (
	"context"
)

// AssignPickingTaskCommandHandler assigns pending picking tasks to workers.
// A task already claimed by another worker rejects the assignment with
// picking.ErrAlreadyAssigned; two workers racing for the same task are
// additionally serialized by the task's optimistic version check.
type AssignPickingTaskCommandHandler struct {
	uowFactory PickingUoWFactory
}

// NewAssignPickingTaskCommandHandler creates a handler for task assignment.
func NewAssignPickingTaskCommandHandler(uowFactory PickingUoWFactory) AssignPickingTaskCommandHandler {
	return AssignPickingTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command.
func (h AssignPickingTaskCommandHandler) Handle(ctx context.Context, command AssignPickingTaskCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.PickingTaskRepository()
	task, err := taskRepo.Get(ctx, command.TaskID())
	if err != nil {
		return err
	}

	if err = task.Assign(command.Worker()); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, task); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
