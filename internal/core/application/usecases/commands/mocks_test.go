package commands_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"warehousing/internal/core/application/usecases/commands"
	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/picking"
	"warehousing/internal/core/domain/model/receiving"
	"warehousing/internal/core/ports"
)

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Add(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) Get(ctx context.Context, warehouseID kernel.UUID, sku string) (*inventory.Item, error) {
	args := m.Called(ctx, warehouseID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockInventoryRepository) GetBySKUs(ctx context.Context, warehouseID kernel.UUID, skus []string) ([]*inventory.Item, error) {
	args := m.Called(ctx, warehouseID, skus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

func (m *MockInventoryRepository) GetBelowReorderPoint(ctx context.Context) ([]*inventory.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

func (m *MockInventoryRepository) GetAll(ctx context.Context) ([]*inventory.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

type MockStockLedger struct{ mock.Mock }

func (m *MockStockLedger) Append(ctx context.Context, movements []inventory.Movement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockStockLedger) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]inventory.Movement, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Movement), args.Error(1)
}

func (m *MockStockLedger) GetByTask(ctx context.Context, taskID kernel.UUID) ([]inventory.Movement, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Movement), args.Error(1)
}

func (m *MockStockLedger) GetBySKU(ctx context.Context, warehouseID kernel.UUID, sku string) ([]inventory.Movement, error) {
	args := m.Called(ctx, warehouseID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Movement), args.Error(1)
}

type MockPickingTaskRepository struct{ mock.Mock }

func (m *MockPickingTaskRepository) Add(ctx context.Context, task *picking.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockPickingTaskRepository) Update(ctx context.Context, task *picking.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockPickingTaskRepository) Get(ctx context.Context, id kernel.UUID) (*picking.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*picking.Task), args.Error(1)
}

func (m *MockPickingTaskRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*picking.Task, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*picking.Task), args.Error(1)
}

func (m *MockPickingTaskRepository) GetAllInStatus(ctx context.Context, status picking.Status) ([]*picking.Task, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*picking.Task), args.Error(1)
}

type MockReceivingTaskRepository struct{ mock.Mock }

func (m *MockReceivingTaskRepository) Add(ctx context.Context, task *receiving.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockReceivingTaskRepository) Update(ctx context.Context, task *receiving.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockReceivingTaskRepository) Get(ctx context.Context, id kernel.UUID) (*receiving.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receiving.Task), args.Error(1)
}

func (m *MockReceivingTaskRepository) GetAllOpen(ctx context.Context) ([]*receiving.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*receiving.Task), args.Error(1)
}

type MockPickingUoW struct{ mock.Mock }

func (m *MockPickingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPickingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPickingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPickingUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockPickingUoW) StockLedger() ports.StockLedger {
	args := m.Called()
	return args.Get(0).(ports.StockLedger)
}

func (m *MockPickingUoW) PickingTaskRepository() ports.PickingTaskRepository {
	args := m.Called()
	return args.Get(0).(ports.PickingTaskRepository)
}

type MockPickingUoWFactory struct{ mock.Mock }

func (m *MockPickingUoWFactory) Create() commands.PickingUoW {
	args := m.Called()
	return args.Get(0).(commands.PickingUoW)
}

type MockReceivingUoW struct{ mock.Mock }

func (m *MockReceivingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReceivingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReceivingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReceivingUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockReceivingUoW) StockLedger() ports.StockLedger {
	args := m.Called()
	return args.Get(0).(ports.StockLedger)
}

func (m *MockReceivingUoW) ReceivingTaskRepository() ports.ReceivingTaskRepository {
	args := m.Called()
	return args.Get(0).(ports.ReceivingTaskRepository)
}

type MockReceivingUoWFactory struct{ mock.Mock }

func (m *MockReceivingUoWFactory) Create() commands.ReceivingUoW {
	args := m.Called()
	return args.Get(0).(commands.ReceivingUoW)
}

type MockInventoryUoW struct{ mock.Mock }

func (m *MockInventoryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInventoryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInventoryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInventoryUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockInventoryUoW) StockLedger() ports.StockLedger {
	args := m.Called()
	return args.Get(0).(ports.StockLedger)
}

type MockInventoryUoWFactory struct{ mock.Mock }

func (m *MockInventoryUoWFactory) Create() commands.InventoryUoW {
	args := m.Called()
	return args.Get(0).(commands.InventoryUoW)
}

type MockMovementPublisher struct{ mock.Mock }

func (m *MockMovementPublisher) Publish(ctx context.Context, movements []inventory.Movement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}
