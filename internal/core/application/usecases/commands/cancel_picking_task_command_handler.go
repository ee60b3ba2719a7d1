package commands

import (
	"context"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/ports"
)

const cancelActor = "warehouse-ops"

// CancelPickingTaskCommandHandler cancels picking tasks and returns whatever
// their lines had not yet consumed to available stock. Units already
// committed by recorded picks stay committed.
type CancelPickingTaskCommandHandler struct {
	uowFactory PickingUoWFactory
	publisher  ports.MovementPublisher
}

// NewCancelPickingTaskCommandHandler creates a handler for task cancellation.
func NewCancelPickingTaskCommandHandler(
	uowFactory PickingUoWFactory,
	publisher ports.MovementPublisher,
) CancelPickingTaskCommandHandler {
	return CancelPickingTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
func (h CancelPickingTaskCommandHandler) Handle(ctx context.Context, command CancelPickingTaskCommand) error {
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

	lines := task.Lines()
	if err = task.Cancel(); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, task); err != nil {
		return err
	}

	actor := task.Assignee()
	if actor == "" {
		actor = cancelActor
	}

	inventoryRepo := uow.InventoryRepository()
	ledger := uow.StockLedger()
	orderID := task.OrderID()
	taskID := task.ID()

	var published []inventory.Movement
	for _, line := range lines {
		remainder := line.UnpickedRemainder()
		if remainder == 0 {
			continue
		}

		item, err := inventoryRepo.Get(ctx, task.WarehouseID(), line.SKU())
		if err != nil {
			return err
		}

		if err = item.Release(remainder, &orderID, &taskID, command.Reason(), actor); err != nil {
			return err
		}

		if err = ledger.Append(ctx, item.PendingMovements()); err != nil {
			return err
		}
		if err = inventoryRepo.Update(ctx, item); err != nil {
			return err
		}
		published = append(published, item.PendingMovements()...)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// best effort, the cancellation is already durable
	_ = h.publisher.Publish(ctx, published)

	return nil
}
