package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"warehousing/internal/core/application/usecases/commands"
	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/receiving"
	"warehousing/internal/pkg/errs"
)

func startedReceivingTask(t *testing.T, warehouseID kernel.UUID, expected map[string]int) *receiving.Task {
	t.Helper()
	lines := make([]receiving.ExpectedLine, 0, len(expected))
	for sku, qty := range expected {
		lines = append(lines, receiving.ExpectedLine{SKU: sku, Quantity: qty})
	}
	task, err := receiving.NewTask(kernel.NewUUID(), warehouseID, "acme-supplies", lines)
	require.NoError(t, err)
	require.NoError(t, task.Start())
	return task
}

func TestReconcileReceivingTaskCommandHandler_Handle_CleanDeliveryCompletes(t *testing.T) {
	ctx := t.Context()
	warehouseID := kernel.NewUUID()

	task := startedReceivingTask(t, warehouseID, map[string]int{"SKU-1": 10})
	require.NoError(t, task.RecordActual("SKU-1", 10, receiving.Good))

	item := stockedItem(t, "SKU-1", warehouseID, 5, 2)

	cmd, err := commands.NewReconcileReceivingTaskCommand(task.ID())
	require.NoError(t, err)

	inventoryRepo := new(MockInventoryRepository)
	ledger := new(MockStockLedger)
	taskRepo := new(MockReceivingTaskRepository)
	uow := new(MockReceivingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReceivingTaskRepository").Return(taskRepo).Once(),
		taskRepo.On("Get", ctx, task.ID()).Return(task, nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		uow.On("StockLedger").Return(ledger).Once(),
		inventoryRepo.On("Get", ctx, warehouseID, "SKU-1").Return(item, nil).Once(),
		ledger.On("Append", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once(),
		inventoryRepo.On("Update", ctx, item).Return(nil).Once(),
		taskRepo.On("Update", ctx, task).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockMovementPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once()

	factory := new(MockReceivingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReconcileReceivingTaskCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, receiving.Completed, task.Status())
	assert.Equal(t, 15, item.OnHand())
	assert.Equal(t, 2, item.Reserved())

	movements := item.PendingMovements()
	require.Len(t, movements, 1)
	assert.Equal(t, inventory.Inbound, movements[0].Kind())
	assert.Equal(t, 10, movements[0].QuantityDelta())

	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestReconcileReceivingTaskCommandHandler_Handle_GoodUnitsCommitDespiteDiscrepancy(t *testing.T) {
	ctx := t.Context()
	warehouseID := kernel.NewUUID()

	task := startedReceivingTask(t, warehouseID, map[string]int{"SKU-1": 10})
	require.NoError(t, task.RecordActual("SKU-1", 7, receiving.Good))
	require.NoError(t, task.RecordActual("SKU-1", 3, receiving.Damaged))

	item := stockedItem(t, "SKU-1", warehouseID, 5, 0)

	cmd, err := commands.NewReconcileReceivingTaskCommand(task.ID())
	require.NoError(t, err)

	inventoryRepo := new(MockInventoryRepository)
	ledger := new(MockStockLedger)
	taskRepo := new(MockReceivingTaskRepository)
	uow := new(MockReceivingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReceivingTaskRepository").Return(taskRepo).Once(),
		taskRepo.On("Get", ctx, task.ID()).Return(task, nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		uow.On("StockLedger").Return(ledger).Once(),
		inventoryRepo.On("Get", ctx, warehouseID, "SKU-1").Return(item, nil).Once(),
		ledger.On("Append", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once(),
		inventoryRepo.On("Update", ctx, item).Return(nil).Once(),
		taskRepo.On("Update", ctx, task).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockMovementPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once()

	factory := new(MockReceivingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReconcileReceivingTaskCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, receiving.Discrepancy, task.Status())
	assert.Equal(t, 12, item.OnHand())
	assert.NotEmpty(t, task.Discrepancies())
	uow.AssertExpectations(t)
}

func TestReconcileReceivingTaskCommandHandler_Handle_UntrackedSKUIsSkipped(t *testing.T) {
	ctx := t.Context()
	warehouseID := kernel.NewUUID()

	task := startedReceivingTask(t, warehouseID, map[string]int{"SKU-1": 5})
	require.NoError(t, task.RecordActual("SKU-1", 5, receiving.Good))
	require.NoError(t, task.RecordActual("SKU-9", 2, receiving.Good))

	item := stockedItem(t, "SKU-1", warehouseID, 5, 0)

	cmd, err := commands.NewReconcileReceivingTaskCommand(task.ID())
	require.NoError(t, err)

	inventoryRepo := new(MockInventoryRepository)
	ledger := new(MockStockLedger)
	taskRepo := new(MockReceivingTaskRepository)
	uow := new(MockReceivingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReceivingTaskRepository").Return(taskRepo).Once(),
		taskRepo.On("Get", ctx, task.ID()).Return(task, nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		uow.On("StockLedger").Return(ledger).Once(),
		inventoryRepo.On("Get", ctx, warehouseID, "SKU-1").Return(item, nil).Once(),
		ledger.On("Append", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once(),
		inventoryRepo.On("Update", ctx, item).Return(nil).Once(),
		inventoryRepo.On("Get", ctx, warehouseID, "SKU-9").
			Return(nil, errs.NewObjectNotFoundError("sku", "SKU-9")).Once(),
		taskRepo.On("Update", ctx, task).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockMovementPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once()

	factory := new(MockReceivingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReconcileReceivingTaskCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, receiving.Discrepancy, task.Status())
	assert.Equal(t, 10, item.OnHand())
	assert.Len(t, task.Discrepancies(), 2)
	uow.AssertExpectations(t)
}

func TestReconcileReceivingTaskCommandHandler_Handle_AnnouncedUntrackedSKUBecomesDiscrepancy(t *testing.T) {
	ctx := t.Context()
	warehouseID := kernel.NewUUID()

	task := startedReceivingTask(t, warehouseID, map[string]int{"NEW-SKU": 5})
	require.NoError(t, task.RecordActual("NEW-SKU", 5, receiving.Good))

	cmd, err := commands.NewReconcileReceivingTaskCommand(task.ID())
	require.NoError(t, err)

	inventoryRepo := new(MockInventoryRepository)
	ledger := new(MockStockLedger)
	taskRepo := new(MockReceivingTaskRepository)
	uow := new(MockReceivingUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReceivingTaskRepository").Return(taskRepo).Once(),
		taskRepo.On("Get", ctx, task.ID()).Return(task, nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		uow.On("StockLedger").Return(ledger).Once(),
		inventoryRepo.On("Get", ctx, warehouseID, "NEW-SKU").
			Return(nil, errs.NewObjectNotFoundError("sku", "NEW-SKU")).Once(),
		taskRepo.On("Update", ctx, task).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockMovementPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("[]inventory.Movement")).Return(nil).Once()

	factory := new(MockReceivingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReconcileReceivingTaskCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, receiving.Discrepancy, task.Status())
	require.Len(t, task.Discrepancies(), 1)
	assert.Equal(t, "NEW-SKU", task.Discrepancies()[0].SKU)
	ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
