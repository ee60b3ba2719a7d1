package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warehousing/internal/core/application/usecases/commands"
	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/picking"
)

func stockedItem(t *testing.T, sku string, warehouseID kernel.UUID, onHand, reserved int) *inventory.Item {
	t.Helper()
	location, err := kernel.NewLocation("A1", "R2", "S3", "B4")
	require.NoError(t, err)
	item, err := inventory.RestoreItem(sku, warehouseID, onHand, reserved, location,
		inventory.ReorderPolicy{ReorderPoint: 5, ReorderQuantity: 20}, 1)
	require.NoError(t, err)
	return item
}

func TestReserveOrderStockCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	cmd, err := commands.NewReserveOrderStockCommand(orderID, []commands.ReservationLine{
		{SKU: "SKU-1", Quantity: 2, WarehouseID: warehouseID},
		{SKU: "SKU-2", Quantity: 1, WarehouseID: warehouseID},
	})
	require.NoError(t, err)

	item1 := stockedItem(t, "SKU-1", warehouseID, 10, 0)
	item2 := stockedItem(t, "SKU-2", warehouseID, 4, 0)

	inventoryRepo := new(MockInventoryRepository)
	ledger := new(MockStockLedger)
	taskRepo := new(MockPickingTaskRepository)
	uow := new(MockPickingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		uow.On("StockLedger").Return(ledger).Once(),
		uow.On("PickingTaskRepository").Return(taskRepo).Once(),
		ledger.On("GetByOrder", ctx, orderID).Return([]inventory.Movement{}, nil).Once(),
		inventoryRepo.On("GetBySKUs", ctx, warehouseID, []string{"SKU-1", "SKU-2"}).
			Return([]*inventory.Item{item1, item2}, nil).Once(),
		ledger.On("Append", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once(),
		inventoryRepo.On("Update", ctx, item1).Return(nil).Once(),
		ledger.On("Append", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once(),
		inventoryRepo.On("Update", ctx, item2).Return(nil).Once(),
		taskRepo.On("Add", ctx, mock.AnythingOfType("*picking.Task")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockMovementPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once()

	factory := new(MockPickingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReserveOrderStockCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 8, item1.Available())
	assert.Equal(t, 2, item1.Reserved())
	assert.Equal(t, 3, item2.Available())

	addCall := taskRepo.Calls[0]
	task := addCall.Arguments[1].(*picking.Task)
	assert.Equal(t, orderID, task.OrderID())
	assert.Equal(t, warehouseID, task.WarehouseID())
	assert.Equal(t, picking.Pending, task.Status())
	assert.Len(t, task.Lines(), 2)

	inventoryRepo.AssertExpectations(t)
	ledger.AssertExpectations(t)
	taskRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestReserveOrderStockCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	cmd, err := commands.NewReserveOrderStockCommand(orderID, []commands.ReservationLine{
		{SKU: "SKU-1", Quantity: 6, WarehouseID: warehouseID},
	})
	require.NoError(t, err)

	// only one unit left unreserved
	item := stockedItem(t, "SKU-1", warehouseID, 5, 4)

	inventoryRepo := new(MockInventoryRepository)
	ledger := new(MockStockLedger)
	taskRepo := new(MockPickingTaskRepository)
	uow := new(MockPickingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		uow.On("StockLedger").Return(ledger).Once(),
		uow.On("PickingTaskRepository").Return(taskRepo).Once(),
		ledger.On("GetByOrder", ctx, orderID).Return([]inventory.Movement{}, nil).Once(),
		inventoryRepo.On("GetBySKUs", ctx, warehouseID, []string{"SKU-1"}).
			Return([]*inventory.Item{item}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPickingUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockMovementPublisher)

	handler := commands.NewReserveOrderStockCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	var insufficient *inventory.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "SKU-1", insufficient.SKU)

	// no retry for a business rejection
	factory.AssertNumberOfCalls(t, "Create", 1)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestReserveOrderStockCommandHandler_Handle_VersionConflictIsRetried(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	cmd, err := commands.NewReserveOrderStockCommand(orderID, []commands.ReservationLine{
		{SKU: "SKU-1", Quantity: 1, WarehouseID: warehouseID},
	})
	require.NoError(t, err)

	inventoryRepo := new(MockInventoryRepository)
	ledger := new(MockStockLedger)
	taskRepo := new(MockPickingTaskRepository)

	// first attempt loses the optimistic write race
	firstUow := new(MockPickingUoW)
	firstItem := stockedItem(t, "SKU-1", warehouseID, 10, 0)
	mock.InOrder(
		firstUow.On("Begin", ctx).Return(nil).Once(),
		firstUow.On("InventoryRepository").Return(inventoryRepo).Once(),
		firstUow.On("StockLedger").Return(ledger).Once(),
		firstUow.On("PickingTaskRepository").Return(taskRepo).Once(),
		ledger.On("GetByOrder", ctx, orderID).Return([]inventory.Movement{}, nil).Once(),
		inventoryRepo.On("GetBySKUs", ctx, warehouseID, []string{"SKU-1"}).
			Return([]*inventory.Item{firstItem}, nil).Once(),
		ledger.On("Append", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once(),
		inventoryRepo.On("Update", ctx, firstItem).Return(inventory.ErrVersionConflict).Once(),
		firstUow.On("Rollback", ctx).Return(nil).Once(),
	)

	// second attempt succeeds on a fresh load
	secondUow := new(MockPickingUoW)
	secondItem := stockedItem(t, "SKU-1", warehouseID, 10, 3)
	mock.InOrder(
		secondUow.On("Begin", ctx).Return(nil).Once(),
		secondUow.On("InventoryRepository").Return(inventoryRepo).Once(),
		secondUow.On("StockLedger").Return(ledger).Once(),
		secondUow.On("PickingTaskRepository").Return(taskRepo).Once(),
		ledger.On("GetByOrder", ctx, orderID).Return([]inventory.Movement{}, nil).Once(),
		inventoryRepo.On("GetBySKUs", ctx, warehouseID, []string{"SKU-1"}).
			Return([]*inventory.Item{secondItem}, nil).Once(),
		ledger.On("Append", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once(),
		inventoryRepo.On("Update", ctx, secondItem).Return(nil).Once(),
		taskRepo.On("Add", ctx, mock.AnythingOfType("*picking.Task")).Return(nil).Once(),
		secondUow.On("Commit", ctx).Return(nil).Once(),
		secondUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPickingUoWFactory)
	factory.On("Create").Return(firstUow).Once()
	factory.On("Create").Return(secondUow).Once()

	publisher := new(MockMovementPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once()

	handler := commands.NewReserveOrderStockCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 4, secondItem.Reserved())
	factory.AssertNumberOfCalls(t, "Create", 2)
	firstUow.AssertExpectations(t)
	secondUow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestReserveOrderStockCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ReserveOrderStockCommand{} // not constructed properly

	factory := new(MockPickingUoWFactory)
	publisher := new(MockMovementPublisher)

	handler := commands.NewReserveOrderStockCommandHandler(factory, publisher)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrReserveOrderStockCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestReserveOrderStockCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	cmd, err := commands.NewReserveOrderStockCommand(orderID, []commands.ReservationLine{
		{SKU: "SKU-1", Quantity: 1, WarehouseID: warehouseID},
	})
	require.NoError(t, err)

	uow := new(MockPickingUoW)
	factory := new(MockPickingUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewReserveOrderStockCommandHandler(factory, new(MockMovementPublisher))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}
