package commands

import (
	"context"
)

// RecordActualItemCommandHandler records arrived batches on receiving tasks.
type RecordActualItemCommandHandler struct {
	uowFactory ReceivingUoWFactory
}

// NewRecordActualItemCommandHandler creates a handler for recording arrived batches.
func NewRecordActualItemCommandHandler(uowFactory ReceivingUoWFactory) RecordActualItemCommandHandler {
	return RecordActualItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the record command.
func (h RecordActualItemCommandHandler) Handle(ctx context.Context, command RecordActualItemCommand) error {
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

	if err = task.RecordActual(command.SKU(), command.Quantity(), command.Condition()); err != nil {
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
