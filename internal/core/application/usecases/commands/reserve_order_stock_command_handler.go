package commands

import (
	"context"
	"sort"
	"time"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/picking"
	"warehousing/internal/core/ports"
)

const (
	// handlingPerUnit is the advisory handling estimate attached to a
	// picking task, scaled by the total requested quantity.
	handlingPerUnit = 30 * time.Second

	reservationActor = "order-intake"
)

// ReserveOrderStockCommandHandler orchestrates stock reservation for an order.
// Reserves every line atomically, records the reservation movements in the
// ledger, and spawns one pending picking task per warehouse the order touches.
// Lost optimistic-concurrency races are retried with exponential backoff.
//
// Example:
//
//	handler := NewReserveOrderStockCommandHandler(uowFactory, publisher)
//	err := handler.Handle(ctx, cmd)
//	var insufficient *inventory.InsufficientStockError
//	switch {
//	case errors.As(err, &insufficient):
//	    log.Printf("Not enough %s: wanted %d, available %d",
//	        insufficient.SKU, insufficient.Requested, insufficient.Available)
//	case err != nil:
//	    log.Printf("Reservation failed: %v", err)
//	}
type ReserveOrderStockCommandHandler struct {
	uowFactory PickingUoWFactory
	publisher  ports.MovementPublisher
}

// NewReserveOrderStockCommandHandler creates a handler for stock reservation.
// Requires a PickingUoWFactory for transactional persistence and a
// MovementPublisher for post-commit movement notifications.
func NewReserveOrderStockCommandHandler(
	uowFactory PickingUoWFactory,
	publisher ports.MovementPublisher,
) ReserveOrderStockCommandHandler {
	return ReserveOrderStockCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the reservation command.
// Lines are reserved in ascending SKU order per warehouse; the projection
// update, the ledger append, and the picking task creation share one
// transaction, so a failed line releases everything already held.
// An order that already has ledger history is a duplicate submission and
// reserves nothing; version conflicts from concurrent writers are retried
// with backoff.
func (h ReserveOrderStockCommandHandler) Handle(ctx context.Context, command ReserveOrderStockCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, func() error {
		return h.reserve(ctx, command)
	})
}

func (h ReserveOrderStockCommandHandler) reserve(ctx context.Context, command ReserveOrderStockCommand) error {
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

	// Any ledger history for this order means a previous submission was
	// already applied; reserving again would hold stock the ledger never
	// records. Duplicates are no-ops.
	history, err := ledger.GetByOrder(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if len(history) > 0 {
		return nil
	}

	var published []inventory.Movement
	for _, warehouseID := range warehouseOrder(command.Lines()) {
		quantities := make(map[string]int)
		for _, line := range command.Lines() {
			if line.WarehouseID == warehouseID {
				quantities[line.SKU] = line.Quantity
			}
		}

		skus := sortedKeys(quantities)
		items, err := inventoryRepo.GetBySKUs(ctx, warehouseID, skus)
		if err != nil {
			return err
		}

		taskLines := make([]picking.Line, 0, len(items))
		totalQuantity := 0
		for _, item := range items {
			qty := quantities[item.SKU()]
			if err = item.Reserve(qty, command.OrderID(), reservationActor); err != nil {
				return err
			}

			line, err := picking.NewLine(item.SKU(), item.Location(), qty)
			if err != nil {
				return err
			}
			taskLines = append(taskLines, line)
			totalQuantity += qty
		}

		for _, item := range items {
			if err = ledger.Append(ctx, item.PendingMovements()); err != nil {
				return err
			}
			if err = inventoryRepo.Update(ctx, item); err != nil {
				return err
			}
			published = append(published, item.PendingMovements()...)
		}

		task, err := picking.NewTask(kernel.NewUUID(), command.OrderID(), warehouseID,
			taskLines, time.Duration(totalQuantity)*handlingPerUnit)
		if err != nil {
			return err
		}

		if err = taskRepo.Add(ctx, task); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	// best effort, the reservation is already durable
	_ = h.publisher.Publish(ctx, published)

	return nil
}

func warehouseOrder(lines []ReservationLine) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(lines))
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.WarehouseID]; !ok {
			seen[line.WarehouseID] = struct{}{}
			ids = append(ids, line.WarehouseID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
