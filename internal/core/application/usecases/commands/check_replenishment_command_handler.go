package commands

import (
	"context"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/receiving"
)

// replenishmentSupplier marks receiving tasks raised by the automatic
// reorder-point scan rather than a supplier announcement.
const replenishmentSupplier = "auto-replenishment"

// CheckReplenishmentCommandHandler scans the inventory for SKUs at or below
// their reorder point and raises receiving tasks for their reorder quantity.
// A SKU already announced on an open receiving task is skipped, so repeated
// scans never stack duplicate orders for the same shortage.
type CheckReplenishmentCommandHandler struct {
	uowFactory ReceivingUoWFactory
}

// NewCheckReplenishmentCommandHandler creates a handler for replenishment scans.
func NewCheckReplenishmentCommandHandler(uowFactory ReceivingUoWFactory) CheckReplenishmentCommandHandler {
	return CheckReplenishmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the replenishment scan. Returns the number of receiving
// tasks created.
func (h CheckReplenishmentCommandHandler) Handle(ctx context.Context, command CheckReplenishmentCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items, err := uow.InventoryRepository().GetBelowReorderPoint(ctx)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	taskRepo := uow.ReceivingTaskRepository()
	openTasks, err := taskRepo.GetAllOpen(ctx)
	if err != nil {
		return 0, err
	}

	announced := announcedSKUs(openTasks)

	created := 0
	for _, item := range items {
		if item.Policy().ReorderQuantity <= 0 {
			continue
		}
		key := announcementKey{warehouseID: item.WarehouseID(), sku: item.SKU()}
		if _, ok := announced[key]; ok {
			continue
		}

		task, taskErr := receiving.NewTask(kernel.NewUUID(), item.WarehouseID(),
			replenishmentSupplier, []receiving.ExpectedLine{{
				SKU:      item.SKU(),
				Quantity: item.Policy().ReorderQuantity,
			}})
		if taskErr != nil {
			return 0, taskErr
		}

		if addErr := taskRepo.Add(ctx, task); addErr != nil {
			return 0, addErr
		}
		created++
	}

	if created == 0 {
		return 0, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return created, nil
}

type announcementKey struct {
	warehouseID kernel.UUID
	sku         string
}

// announcedSKUs collects every (warehouse, sku) pair expected on an open
// receiving task.
func announcedSKUs(tasks []*receiving.Task) map[announcementKey]struct{} {
	announced := make(map[announcementKey]struct{})
	for _, task := range tasks {
		for _, line := range task.Expected() {
			announced[announcementKey{warehouseID: task.WarehouseID(), sku: line.SKU}] = struct{}{}
		}
	}
	return announced
}
