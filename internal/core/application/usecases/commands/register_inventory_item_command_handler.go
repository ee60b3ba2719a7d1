package commands

import (
	"context"

	"warehousing/internal/core/domain/model/inventory"
)

// RegisterInventoryItemCommandHandler registers new SKUs for tracking.
// Registration is the only path that creates inventory rows; every later
// operation assumes the item already exists.
type RegisterInventoryItemCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewRegisterInventoryItemCommandHandler creates a handler for item registration.
func NewRegisterInventoryItemCommandHandler(uowFactory InventoryUoWFactory) RegisterInventoryItemCommandHandler {
	return RegisterInventoryItemCommandHandler{uowFactory: uowFactory}
}

// Handle processes the registration command.
// Registering a SKU that the warehouse already tracks fails on the unique
// projection row; existing stock is never overwritten.
func (h RegisterInventoryItemCommandHandler) Handle(ctx context.Context, command RegisterInventoryItemCommand) error {
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

	item, err := inventory.NewItem(command.SKU(), command.WarehouseID(),
		command.Location(), command.Policy())
	if err != nil {
		return err
	}

	if err = uow.InventoryRepository().Add(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
