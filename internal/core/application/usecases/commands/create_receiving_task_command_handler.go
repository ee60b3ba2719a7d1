package commands

import (
	"context"

	"warehousing/internal/core/domain/model/receiving"
)

// CreateReceivingTaskCommandHandler registers announced deliveries as
// pending receiving tasks.
type CreateReceivingTaskCommandHandler struct {
	uowFactory ReceivingUoWFactory
}

// NewCreateReceivingTaskCommandHandler creates a handler for receiving task creation.
func NewCreateReceivingTaskCommandHandler(uowFactory ReceivingUoWFactory) CreateReceivingTaskCommandHandler {
	return CreateReceivingTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the creation command.
func (h CreateReceivingTaskCommandHandler) Handle(ctx context.Context, command CreateReceivingTaskCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	task, err := receiving.NewTask(command.TaskID(), command.WarehouseID(),
		command.Supplier(), command.Expected())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ReceivingTaskRepository().Add(ctx, task); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
