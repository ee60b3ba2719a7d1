package commands

import (
	"context"

	"warehousing/internal/core/ports"
)

// AdjustStockCommandHandler applies manual stock corrections. The projection
// change and its Adjustment ledger entry share one transaction.
type AdjustStockCommandHandler struct {
	uowFactory InventoryUoWFactory
	publisher  ports.MovementPublisher
}

// NewAdjustStockCommandHandler creates a handler for stock adjustments.
func NewAdjustStockCommandHandler(
	uowFactory InventoryUoWFactory,
	publisher ports.MovementPublisher,
) AdjustStockCommandHandler {
	return AdjustStockCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the adjustment command.
// A negative delta that would drop on-hand below zero or below the reserved
// quantity is rejected by the aggregate before any state changes.
func (h AdjustStockCommandHandler) Handle(ctx context.Context, command AdjustStockCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, func() error {
		return h.adjust(ctx, command)
	})
}

func (h AdjustStockCommandHandler) adjust(ctx context.Context, command AdjustStockCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inventoryRepo := uow.InventoryRepository()
	item, err := inventoryRepo.Get(ctx, command.WarehouseID(), command.SKU())
	if err != nil {
		return err
	}

	if err = item.Adjust(command.Delta(), command.Reason(), command.PerformedBy()); err != nil {
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

	// best effort, the adjustment is already durable
	_ = h.publisher.Publish(ctx, movements)

	return nil
}
