package commands

import (
	"context"
	"errors"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/ports"
	"warehousing/internal/pkg/errs"
)

const receivingActor = "receiving"

// ReconcileReceivingTaskCommandHandler reconciles receiving tasks against
// their announcements and commits the good units to stock. Good units
// replenish on-hand quantity even when the same delivery carries
// discrepancies; only the mismatches are withheld for follow-up.
type ReconcileReceivingTaskCommandHandler struct {
	uowFactory ReceivingUoWFactory
	publisher  ports.MovementPublisher
}

// NewReconcileReceivingTaskCommandHandler creates a handler for receiving reconciliation.
func NewReconcileReceivingTaskCommandHandler(
	uowFactory ReceivingUoWFactory,
	publisher ports.MovementPublisher,
) ReconcileReceivingTaskCommandHandler {
	return ReconcileReceivingTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the reconciliation command.
// Good units of SKUs the warehouse does not track cannot be committed to
// the projection; the lost units are recorded on the task as discrepancies.
func (h ReconcileReceivingTaskCommandHandler) Handle(ctx context.Context, command ReconcileReceivingTaskCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, func() error {
		return h.reconcile(ctx, command)
	})
}

func (h ReconcileReceivingTaskCommandHandler) reconcile(ctx context.Context, command ReconcileReceivingTaskCommand) error {
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

	commits, err := task.Reconcile()
	if err != nil {
		return err
	}

	inventoryRepo := uow.InventoryRepository()
	ledger := uow.StockLedger()
	taskID := task.ID()

	var published []inventory.Movement
	for _, commit := range commits {
		item, err := inventoryRepo.Get(ctx, task.WarehouseID(), commit.SKU)
		if errors.Is(err, errs.ErrObjectNotFound) {
			if err = task.ReportUntrackedSKU(commit.SKU, commit.Quantity); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		if err = item.ReceiveInbound(commit.Quantity, taskID, receivingActor); err != nil {
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

	if err = taskRepo.Update(ctx, task); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// best effort, the inbound commit is already durable
	_ = h.publisher.Publish(ctx, published)

	return nil
}
