package commands

import (
	"context"
)

// StartReceivingTaskCommandHandler moves pending receiving tasks into
// progress so staff can record arrived units.
type StartReceivingTaskCommandHandler struct {
	uowFactory ReceivingUoWFactory
}

// NewStartReceivingTaskCommandHandler creates a handler for starting receiving tasks.
func NewStartReceivingTaskCommandHandler(uowFactory ReceivingUoWFactory) StartReceivingTaskCommandHandler {
	return StartReceivingTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start command.
func (h StartReceivingTaskCommandHandler) Handle(ctx context.Context, command StartReceivingTaskCommand) error {
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

	taskRepo := uow.ReceivingTaskRepository()
	task, err := taskRepo.Get(ctx, command.TaskID())
	if err != nil {
		return err
	}

	if err = task.Start(); err != nil {
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
