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

func ledgerMovement(t *testing.T, sku string, warehouseID kernel.UUID, kind inventory.MovementKind, delta int) inventory.Movement {
	t.Helper()
	movement, err := inventory.NewMovement(sku, warehouseID, kind, delta, nil, nil,
		"audit test fixture", "system")
	require.NoError(t, err)
	return movement
}

func TestAuditStockProjectionCommandHandler_Handle_MatchingProjection(t *testing.T) {
	ctx := t.Context()
	warehouseID := kernel.NewUUID()

	item := stockedItem(t, "SKU-1", warehouseID, 10, 3)
	movements := []inventory.Movement{
		ledgerMovement(t, "SKU-1", warehouseID, inventory.Inbound, 10),
		ledgerMovement(t, "SKU-1", warehouseID, inventory.Reservation, 3),
	}

	cmd := commands.NewAuditStockProjectionCommand()

	inventoryRepo := new(MockInventoryRepository)
	ledger := new(MockStockLedger)
	uow := new(MockInventoryUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("GetAll", ctx).Return([]*inventory.Item{item}, nil).Once(),
		uow.On("StockLedger").Return(ledger).Once(),
		ledger.On("GetBySKU", ctx, warehouseID, "SKU-1").Return(movements, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockInventoryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAuditStockProjectionCommandHandler(factory)
	divergences, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, divergences)
	uow.AssertExpectations(t)
}

func TestAuditStockProjectionCommandHandler_Handle_ReportsDivergence(t *testing.T) {
	ctx := t.Context()
	warehouseID := kernel.NewUUID()

	item := stockedItem(t, "SKU-1", warehouseID, 10, 3)
	movements := []inventory.Movement{
		ledgerMovement(t, "SKU-1", warehouseID, inventory.Inbound, 8),
		ledgerMovement(t, "SKU-1", warehouseID, inventory.Reservation, 3),
	}

	cmd := commands.NewAuditStockProjectionCommand()

	inventoryRepo := new(MockInventoryRepository)
	ledger := new(MockStockLedger)
	uow := new(MockInventoryUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("GetAll", ctx).Return([]*inventory.Item{item}, nil).Once(),
		uow.On("StockLedger").Return(ledger).Once(),
		ledger.On("GetBySKU", ctx, warehouseID, "SKU-1").Return(movements, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockInventoryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAuditStockProjectionCommandHandler(factory)
	divergences, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, divergences, 1)
	assert.Equal(t, "SKU-1", divergences[0].SKU)
	assert.Equal(t, warehouseID, divergences[0].WarehouseID)
	assert.Equal(t, 10, divergences[0].ProjectedOnHand)
	assert.Equal(t, 8, divergences[0].ReplayedOnHand)
	assert.Equal(t, 3, divergences[0].ProjectedReserved)
	assert.Equal(t, 3, divergences[0].ReplayedReserved)
	uow.AssertExpectations(t)
}

func TestAuditStockProjectionCommandHandler_Handle_RejectsUnconstructedCommand(t *testing.T) {
	factory := new(MockInventoryUoWFactory)
	handler := commands.NewAuditStockProjectionCommandHandler(factory)

	var cmd commands.AuditStockProjectionCommand
	_, err := handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, commands.ErrAuditStockProjectionCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
