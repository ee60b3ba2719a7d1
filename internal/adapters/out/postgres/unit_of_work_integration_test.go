package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "warehousing/internal/adapters/out/postgres"
	"warehousing/internal/adapters/out/postgres/inventoryrepo"
	"warehousing/internal/adapters/out/postgres/ledgerrepo"
	"warehousing/internal/adapters/out/postgres/pickingrepo"
	"warehousing/internal/adapters/out/postgres/receivingrepo"
	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/picking"
	"warehousing/internal/core/domain/model/receiving"
	"warehousing/internal/core/ports"
	"warehousing/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&inventoryrepo.ItemDTO{},
		&ledgerrepo.MovementDTO{},
		&pickingrepo.TaskDTO{},
		&pickingrepo.LineDTO{},
		&receivingrepo.TaskDTO{},
		&receivingrepo.ExpectedLineDTO{},
		&receivingrepo.ActualLineDTO{},
		&receivingrepo.DiscrepancyDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE inventory_items, stock_movements,
		picking_tasks, picking_task_lines,
		receiving_tasks, receiving_expected_lines, receiving_actual_lines, receiving_discrepancies`).Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	// Create multiple unit of work instances
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	// Verify instances are different
	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	// Verify both instances provide access to repositories
	suite.NotNil(uow1.InventoryRepository(), "First instance should provide inventory repository")
	suite.NotNil(uow1.StockLedger(), "First instance should provide stock ledger")
	suite.NotNil(uow2.PickingTaskRepository(), "Second instance should provide picking task repository")
	suite.NotNil(uow2.ReceivingTaskRepository(), "Second instance should provide receiving task repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Test begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Test multiple begin calls are safe
	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	// Test commit
	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	// Test rollback on new transaction
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Test commit without begin
	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	// Test rollback without begin
	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_InventoryRoundTrip verifies an inventory item survives the
// full persistence cycle with its slot and reorder policy intact.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_InventoryRoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	warehouseID := kernel.NewUUID()
	item := createTestItem(suite.T(), "SKU-1", warehouseID, 10, 0)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.InventoryRepository().Add(ctx, item)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify item persists after commit using new unit of work
	newUow := suite.factory.Create()
	retrieved, err := newUow.InventoryRepository().Get(ctx, warehouseID, "SKU-1")
	suite.Require().NoError(err)
	suite.Equal(10, retrieved.OnHand())
	suite.Equal(0, retrieved.Reserved())
	suite.Equal("A1-R2-S3-B4", retrieved.Location().String())
	suite.Equal(5, retrieved.Policy().ReorderPoint)
	suite.Equal(int64(1), retrieved.Version())
}

// TestUnitOfWork_ReservationWorkflow walks a reservation through the inventory
// projection and the ledger within one transaction and verifies both persisted.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ReservationWorkflow() {
	ctx := context.Background()
	warehouseID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	suite.addItem(createTestItem(suite.T(), "SKU-1", warehouseID, 10, 0))

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	item, err := uow.InventoryRepository().Get(ctx, warehouseID, "SKU-1")
	suite.Require().NoError(err)

	err = item.Reserve(4, orderID, "order-intake")
	suite.Require().NoError(err)

	err = uow.StockLedger().Append(ctx, item.PendingMovements())
	suite.Require().NoError(err)
	err = uow.InventoryRepository().Update(ctx, item)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Counters and ledger agree after commit
	newUow := suite.factory.Create()
	retrieved, err := newUow.InventoryRepository().Get(ctx, warehouseID, "SKU-1")
	suite.Require().NoError(err)
	suite.Equal(4, retrieved.Reserved())
	suite.Equal(6, retrieved.Available())
	suite.Equal(int64(2), retrieved.Version())

	movements, err := newUow.StockLedger().GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(movements, 1)
	suite.Equal(inventory.Reservation, movements[0].Kind())
	suite.Equal(4, movements[0].QuantityDelta())
}

// TestUnitOfWork_VersionConflict verifies the second writer of the same item
// version is rejected with a version conflict.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_VersionConflict() {
	ctx := context.Background()
	warehouseID := kernel.NewUUID()

	suite.addItem(createTestItem(suite.T(), "SKU-1", warehouseID, 10, 0))

	// Two units of work load the same version
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	item1, err := uow1.InventoryRepository().Get(ctx, warehouseID, "SKU-1")
	suite.Require().NoError(err)
	item2, err := uow2.InventoryRepository().Get(ctx, warehouseID, "SKU-1")
	suite.Require().NoError(err)

	err = item1.Reserve(2, kernel.NewUUID(), "order-intake")
	suite.Require().NoError(err)
	err = item2.Reserve(3, kernel.NewUUID(), "order-intake")
	suite.Require().NoError(err)

	// First writer wins
	err = uow1.InventoryRepository().Update(ctx, item1)
	suite.Require().NoError(err)

	// Second writer must reload and retry
	err = uow2.InventoryRepository().Update(ctx, item2)
	suite.Require().ErrorIs(err, inventory.ErrVersionConflict)

	retrieved, err := suite.factory.Create().InventoryRepository().Get(ctx, warehouseID, "SKU-1")
	suite.Require().NoError(err)
	suite.Equal(2, retrieved.Reserved())
}

// TestUnitOfWork_LedgerAppendIsIdempotent verifies replaying the same movement
// never produces a second ledger row.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_LedgerAppendIsIdempotent() {
	ctx := context.Background()
	warehouseID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	movement, err := inventory.NewMovement("SKU-1", warehouseID, inventory.Reservation, 4,
		&orderID, nil, "order placed", "order-intake")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.StockLedger().Append(ctx, []inventory.Movement{movement})
	suite.Require().NoError(err)

	// Same movement appended again is silently skipped
	err = uow.StockLedger().Append(ctx, []inventory.Movement{movement})
	suite.Require().NoError(err)

	movements, err := uow.StockLedger().GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Len(movements, 1)
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	warehouseID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	suite.addItem(createTestItem(suite.T(), "SKU-1", warehouseID, 10, 0))

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	item, err := uow.InventoryRepository().Get(ctx, warehouseID, "SKU-1")
	suite.Require().NoError(err)
	err = item.Reserve(4, orderID, "order-intake")
	suite.Require().NoError(err)

	err = uow.StockLedger().Append(ctx, item.PendingMovements())
	suite.Require().NoError(err)
	err = uow.InventoryRepository().Update(ctx, item)
	suite.Require().NoError(err)

	task := createTestPickingTask(suite.T(), orderID, warehouseID)
	err = uow.PickingTaskRepository().Add(ctx, task)
	suite.Require().NoError(err)

	// Rollback transaction
	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Verify nothing was persisted
	newUow := suite.factory.Create()

	retrieved, err := newUow.InventoryRepository().Get(ctx, warehouseID, "SKU-1")
	suite.Require().NoError(err)
	suite.Equal(0, retrieved.Reserved(), "Reservation should not persist after rollback")

	movements, err := newUow.StockLedger().GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Empty(movements, "Ledger entries should not persist after rollback")

	_, err = newUow.PickingTaskRepository().Get(ctx, task.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Task should not exist after rollback")
}

// TestUnitOfWork_PickingTaskRoundTrip verifies a picking task and its lines
// survive the full persistence cycle, including line mutations on update.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PickingTaskRoundTrip() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	task := createTestPickingTask(suite.T(), orderID, warehouseID)

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.PickingTaskRepository().Add(ctx, task)
	suite.Require().NoError(err)
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Mutate through the domain and update
	loaded, err := suite.factory.Create().PickingTaskRepository().Get(ctx, task.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Assign("worker-7"))
	suite.Require().NoError(loaded.Start())
	_, err = loaded.RecordLine("SKU-1", 3, picking.LineShort)
	suite.Require().NoError(err)

	updateUow := suite.factory.Create()
	err = updateUow.Begin(ctx)
	suite.Require().NoError(err)
	err = updateUow.PickingTaskRepository().Update(ctx, loaded)
	suite.Require().NoError(err)
	err = updateUow.Commit(ctx)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().PickingTaskRepository().Get(ctx, task.ID())
	suite.Require().NoError(err)
	suite.Equal(picking.InProgress, retrieved.Status())
	suite.Equal("worker-7", retrieved.Assignee())
	suite.Equal(int64(2), retrieved.Version())

	suite.Require().Len(retrieved.Lines(), 1)
	suite.Equal(3, retrieved.Lines()[0].QuantityPicked())
	suite.Equal(picking.LineShort, retrieved.Lines()[0].Status())

	byOrder, err := suite.factory.Create().PickingTaskRepository().GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Len(byOrder, 1)

	inProgress, err := suite.factory.Create().PickingTaskRepository().GetAllInStatus(ctx, picking.InProgress)
	suite.Require().NoError(err)
	suite.Len(inProgress, 1)
}

// TestUnitOfWork_ReceivingTaskRoundTrip verifies a receiving task with actual
// lines and discrepancies survives the full persistence cycle.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ReceivingTaskRoundTrip() {
	ctx := context.Background()
	warehouseID := kernel.NewUUID()

	task, err := receiving.NewTask(kernel.NewUUID(), warehouseID, "ACME Logistics",
		[]receiving.ExpectedLine{{SKU: "SKU-1", Quantity: 10}})
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.ReceivingTaskRepository().Add(ctx, task)
	suite.Require().NoError(err)
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Record a short, partly damaged delivery and reconcile
	loaded, err := suite.factory.Create().ReceivingTaskRepository().Get(ctx, task.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Start())
	suite.Require().NoError(loaded.RecordActual("SKU-1", 7, receiving.Good))
	suite.Require().NoError(loaded.RecordActual("SKU-1", 2, receiving.Damaged))

	commits, err := loaded.Reconcile()
	suite.Require().NoError(err)
	suite.Require().Len(commits, 1)
	suite.Equal(7, commits[0].Quantity)

	updateUow := suite.factory.Create()
	err = updateUow.Begin(ctx)
	suite.Require().NoError(err)
	err = updateUow.ReceivingTaskRepository().Update(ctx, loaded)
	suite.Require().NoError(err)
	err = updateUow.Commit(ctx)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().ReceivingTaskRepository().Get(ctx, task.ID())
	suite.Require().NoError(err)
	suite.Equal(receiving.Discrepancy, retrieved.Status())
	suite.Equal("ACME Logistics", retrieved.Supplier())
	suite.Len(retrieved.Actuals(), 2)
	suite.Len(retrieved.Discrepancies(), 2)
	suite.Equal(int64(2), retrieved.Version())
}

// TestUnitOfWork_GetBelowReorderPoint verifies the replenishment scan only
// returns items whose available quantity fell to the reorder point.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GetBelowReorderPoint() {
	ctx := context.Background()
	warehouseID := kernel.NewUUID()

	// Available 2 is below the reorder point of 5, available 10 is not
	suite.addItem(createTestItem(suite.T(), "SKU-LOW", warehouseID, 6, 4))
	suite.addItem(createTestItem(suite.T(), "SKU-OK", warehouseID, 10, 0))

	items, err := suite.factory.Create().InventoryRepository().GetBelowReorderPoint(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Equal("SKU-LOW", items[0].SKU())
}

// TestUnitOfWork_GetBySKUsRejectsUntracked verifies reservations can never
// operate on a partial item set.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GetBySKUsRejectsUntracked() {
	ctx := context.Background()
	warehouseID := kernel.NewUUID()

	suite.addItem(createTestItem(suite.T(), "SKU-1", warehouseID, 10, 0))

	_, err := suite.factory.Create().InventoryRepository().
		GetBySKUs(ctx, warehouseID, []string{"SKU-1", "SKU-GHOST"})
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// addItem persists an item outside any test transaction.
func (suite *UnitOfWorkIntegrationTestSuite) addItem(item *inventory.Item) {
	suite.T().Helper()
	err := suite.factory.Create().InventoryRepository().Add(context.Background(), item)
	suite.Require().NoError(err)
}

// createTestItem creates a valid stocked inventory item for testing purposes.
func createTestItem(t *testing.T, sku string, warehouseID kernel.UUID, onHand, reserved int) *inventory.Item {
	t.Helper()

	location, err := kernel.NewLocation("A1", "R2", "S3", "B4")
	if err != nil {
		t.Fatal(err)
	}

	policy := inventory.ReorderPolicy{ReorderPoint: 5, ReorderQuantity: 20}
	item, err := inventory.RestoreItem(sku, warehouseID, onHand, reserved, location, policy, 1)
	if err != nil {
		t.Fatal(err)
	}
	return item
}

// createTestPickingTask creates a pending single-line picking task for testing purposes.
func createTestPickingTask(t *testing.T, orderID, warehouseID kernel.UUID) *picking.Task {
	t.Helper()

	location, err := kernel.NewLocation("A1", "R2", "S3", "B4")
	if err != nil {
		t.Fatal(err)
	}

	line, err := picking.NewLine("SKU-1", location, 4)
	if err != nil {
		t.Fatal(err)
	}

	task, err := picking.NewTask(kernel.NewUUID(), orderID, warehouseID, []picking.Line{line}, 2*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	return task
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
