package commands

import (
	"context"
	"sort"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/ports"
)

const releaseActor = "order-intake"

// ReleaseOrderStockCommandHandler releases every unit still reserved for an
// order. The outstanding quantity is derived from the ledger, not from the
// caller, which makes the release idempotent: replaying the command after a
// crash finds nothing outstanding and changes nothing. Any picking task still
// open for the order is cancelled in the same transaction.
type ReleaseOrderStockCommandHandler struct {
	uowFactory PickingUoWFactory
	publisher  ports.MovementPublisher
}

// NewReleaseOrderStockCommandHandler creates a handler for order stock release.
// Requires a PickingUoWFactory for transactional persistence and a
// MovementPublisher for post-commit movement notifications.
func NewReleaseOrderStockCommandHandler(
	uowFactory PickingUoWFactory,
	publisher ports.MovementPublisher,
) ReleaseOrderStockCommandHandler {
	return ReleaseOrderStockCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the release command.
// Replays the order's ledger movements to find the net outstanding
// reservation per SKU and warehouse, releases those quantities, and cancels
// the order's non-terminal picking tasks.
func (h ReleaseOrderStockCommandHandler) Handle(ctx context.Context, command ReleaseOrderStockCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, func() error {
		return h.release(ctx, command)
	})
}

func (h ReleaseOrderStockCommandHandler) release(ctx context.Context, command ReleaseOrderStockCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inventoryRepo := uow.InventoryRepository()
	ledger := uow.StockLedger()
	taskRepo := uow.PickingTaskRepository()

	movements, err := ledger.GetByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}

	var published []inventory.Movement
	orderID := command.OrderID()
	for _, outstanding := range outstandingReservations(movements) {
		item, err := inventoryRepo.Get(ctx, outstanding.warehouseID, outstanding.sku)
		if err != nil {
			return err
		}

		if err = item.Release(outstanding.quantity, &orderID, nil,
			command.Reason(), releaseActor); err != nil {
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

	tasks, err := taskRepo.GetByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}
	for _, task := range tasks {
		if task.Status().IsTerminal() {
			continue
		}
		if err = task.Cancel(); err != nil {
			return err
		}
		if err = taskRepo.Update(ctx, task); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// best effort, the release is already durable
	_ = h.publisher.Publish(ctx, published)

	return nil
}

type outstandingReservation struct {
	warehouseID kernel.UUID
	sku         string
	quantity    int
}

// outstandingReservations folds an order's movement history into the net
// quantity still held per SKU and warehouse. Reservations add to the held
// quantity; releases and committed picks subtract from it.
func outstandingReservations(movements []inventory.Movement) []outstandingReservation {
	type key struct {
		warehouseID kernel.UUID
		sku         string
	}

	held := make(map[key]int)
	for _, movement := range movements {
		k := key{movement.WarehouseID(), movement.SKU()}
		switch movement.Kind() {
		case inventory.Reservation, inventory.ReservationRelease, inventory.Outbound:
			held[k] += movement.QuantityDelta()
		}
	}

	outstanding := make([]outstandingReservation, 0, len(held))
	for k, qty := range held {
		if qty > 0 {
			outstanding = append(outstanding, outstandingReservation{
				warehouseID: k.warehouseID,
				sku:         k.sku,
				quantity:    qty,
			})
		}
	}
	sort.Slice(outstanding, func(i, j int) bool { return outstanding[i].sku < outstanding[j].sku })

	return outstanding
}
