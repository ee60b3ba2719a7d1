package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warehousing/internal/core/application/usecases/commands"
	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
)

func TestAdjustStockCommandHandler_Handle_AppliesCorrection(t *testing.T) {
	ctx := t.Context()
	warehouseID := kernel.NewUUID()
	item := stockedItem(t, "SKU-1", warehouseID, 5, 0)

	cmd, err := commands.NewAdjustStockCommand(warehouseID, "SKU-1", 3,
		"cycle count surplus", "stock-auditor")
	require.NoError(t, err)

	inventoryRepo := new(MockInventoryRepository)
	ledger := new(MockStockLedger)
	uow := new(MockInventoryUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("Get", ctx, warehouseID, "SKU-1").Return(item, nil).Once(),
		uow.On("StockLedger").Return(ledger).Once(),
		ledger.On("Append", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once(),
		inventoryRepo.On("Update", ctx, item).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockMovementPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once()

	factory := new(MockInventoryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdjustStockCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 8, item.OnHand())

	movements := item.PendingMovements()
	require.Len(t, movements, 1)
	assert.Equal(t, inventory.Adjustment, movements[0].Kind())

	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAdjustStockCommandHandler_Handle_RetriesVersionConflict(t *testing.T) {
	ctx := t.Context()
	warehouseID := kernel.NewUUID()

	cmd, err := commands.NewAdjustStockCommand(warehouseID, "SKU-1", -2,
		"damage write-off", "stock-auditor")
	require.NoError(t, err)

	staleItem := stockedItem(t, "SKU-1", warehouseID, 5, 0)
	staleRepo := new(MockInventoryRepository)
	staleLedger := new(MockStockLedger)
	staleUow := new(MockInventoryUoW)

	mock.InOrder(
		staleUow.On("Begin", ctx).Return(nil).Once(),
		staleUow.On("InventoryRepository").Return(staleRepo).Once(),
		staleRepo.On("Get", ctx, warehouseID, "SKU-1").Return(staleItem, nil).Once(),
		staleUow.On("StockLedger").Return(staleLedger).Once(),
		staleLedger.On("Append", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once(),
		staleRepo.On("Update", ctx, staleItem).Return(inventory.ErrVersionConflict).Once(),
		staleUow.On("Rollback", ctx).Return(nil).Once(),
	)

	freshItem := stockedItem(t, "SKU-1", warehouseID, 5, 0)
	freshRepo := new(MockInventoryRepository)
	freshLedger := new(MockStockLedger)
	freshUow := new(MockInventoryUoW)

	mock.InOrder(
		freshUow.On("Begin", ctx).Return(nil).Once(),
		freshUow.On("InventoryRepository").Return(freshRepo).Once(),
		freshRepo.On("Get", ctx, warehouseID, "SKU-1").Return(freshItem, nil).Once(),
		freshUow.On("StockLedger").Return(freshLedger).Once(),
		freshLedger.On("Append", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once(),
		freshRepo.On("Update", ctx, freshItem).Return(nil).Once(),
		freshUow.On("Commit", ctx).Return(nil).Once(),
		freshUow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockMovementPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once()

	factory := new(MockInventoryUoWFactory)
	factory.On("Create").Return(staleUow).Once()
	factory.On("Create").Return(freshUow).Once()

	handler := commands.NewAdjustStockCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 3, freshItem.OnHand())
	staleUow.AssertExpectations(t)
	freshUow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
