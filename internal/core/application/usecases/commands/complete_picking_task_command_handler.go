package commands

import (
	"context"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/ports"
)

const remainderReleaseReason = "unpicked remainder"

// CompletePickingTaskCommandHandler completes picking tasks and returns the
// reservations their short and damaged lines never consumed. The task
// transition and the releases share one transaction.
type CompletePickingTaskCommandHandler struct {
	uowFactory PickingUoWFactory
	publisher  ports.MovementPublisher
}

// NewCompletePickingTaskCommandHandler creates a handler for task completion.
func NewCompletePickingTaskCommandHandler(
	uowFactory PickingUoWFactory,
	publisher ports.MovementPublisher,
) CompletePickingTaskCommandHandler {
	return CompletePickingTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the completion command.
// Fails with picking.ErrLinesNotTerminal while any line is still pending.
func (h CompletePickingTaskCommandHandler) Handle(ctx context.Context, command CompletePickingTaskCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, func() error {
		return h.complete(ctx, command)
	})
}

func (h CompletePickingTaskCommandHandler) complete(ctx context.Context, command CompletePickingTaskCommand) error {
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

	remainders, err := task.Complete()
	if err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, task); err != nil {
		return err
	}

	inventoryRepo := uow.InventoryRepository()
	ledger := uow.StockLedger()
	orderID := task.OrderID()
	taskID := task.ID()

	var published []inventory.Movement
	for _, remainder := range remainders {
		item, err := inventoryRepo.Get(ctx, task.WarehouseID(), remainder.SKU)
		if err != nil {
			return err
		}

		if err = item.Release(remainder.Quantity, &orderID, &taskID,
			remainderReleaseReason, task.Assignee()); err != nil {
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

	// best effort, the completion is already durable
	_ = h.publisher.Publish(ctx, published)

	return nil
}
