package commands

import (
	"context"
)

// StartPickingTaskCommandHandler moves assigned picking tasks into progress.
type StartPickingTaskCommandHandler struct {
	uowFactory PickingUoWFactory
}

// NewStartPickingTaskCommandHandler creates a handler for starting picking tasks.
func NewStartPickingTaskCommandHandler(uowFactory PickingUoWFactory) StartPickingTaskCommandHandler {
	return StartPickingTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start command.
func (h StartPickingTaskCommandHandler) Handle(ctx context.Context, command StartPickingTaskCommand) error {
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
