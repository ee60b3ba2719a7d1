package commands

import (
	"context"

	"warehousing/internal/core/ports"
)

// RecordPickLineCommandHandler records pick line outcomes and commits the
// picked units against stock. A committed pick turns the line's reserved
// units into an Outbound ledger movement in the same transaction as the line
// update, so the projection and the task can never disagree about what left
// the shelf.
type RecordPickLineCommandHandler struct {
	uowFactory PickingUoWFactory
	publisher  ports.MovementPublisher
}

// NewRecordPickLineCommandHandler creates a handler for pick line recording.
func NewRecordPickLineCommandHandler(
	uowFactory PickingUoWFactory,
	publisher ports.MovementPublisher,
) RecordPickLineCommandHandler {
	return RecordPickLineCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the record command.
// Short lines commit their partial quantity immediately; the unpicked
// remainder stays reserved until the task completes. Damaged lines commit
// nothing.
func (h RecordPickLineCommandHandler) Handle(ctx context.Context, command RecordPickLineCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, func() error {
		return h.record(ctx, command)
	})
}

func (h RecordPickLineCommandHandler) record(ctx context.Context, command RecordPickLineCommand) error {
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

	committed, err := task.RecordLine(command.SKU(), command.QuantityPicked(), command.Outcome())
	if err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, task); err != nil {
		return err
	}

	if committed > 0 {
		inventoryRepo := uow.InventoryRepository()
		item, err := inventoryRepo.Get(ctx, task.WarehouseID(), command.SKU())
		if err != nil {
			return err
		}

		if err = item.CommitPick(committed, task.OrderID(), task.ID(), task.Assignee()); err != nil {
			return err
		}

		if err = uow.StockLedger().Append(ctx, item.PendingMovements()); err != nil {
			return err
		}
		if err = inventoryRepo.Update(ctx, item); err != nil {
			return err
		}

		movements := item.PendingMovements()
		if err = uow.Commit(ctx); err != nil {
			return err
		}

		// best effort, the pick is already durable
		_ = h.publisher.Publish(ctx, movements)
		return nil
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
