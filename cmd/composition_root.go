package cmd

import (
	"log/slog"

	apihttp "warehousing/internal/adapters/in/http"
	"warehousing/internal/adapters/out/kafka"
	"warehousing/internal/adapters/out/postgres"
	"warehousing/internal/core/application/usecases/commands"
	"warehousing/internal/core/application/usecases/queries"
	"warehousing/internal/core/ports"
	"warehousing/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.MovementPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	publisher := kafka.NewMovementPublisher(
		configs.KafkaBrokers(),
		configs.KafkaMovementsTopic,
		logger,
	)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateRegisterInventoryItemCommandHandler() commands.RegisterInventoryItemCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterInventoryItemCommandHandler(f)
}

func (c *CompositionRoot) CreateReserveOrderStockCommandHandler() commands.ReserveOrderStockCommandHandler {
	var f commands.PickingUoWFactory = FuncPickingUoWFactory(func() commands.PickingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReserveOrderStockCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateReleaseOrderStockCommandHandler() commands.ReleaseOrderStockCommandHandler {
	var f commands.PickingUoWFactory = FuncPickingUoWFactory(func() commands.PickingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseOrderStockCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAdjustStockCommandHandler() commands.AdjustStockCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdjustStockCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAssignPickingTaskCommandHandler() commands.AssignPickingTaskCommandHandler {
	var f commands.PickingUoWFactory = FuncPickingUoWFactory(func() commands.PickingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPickingTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateStartPickingTaskCommandHandler() commands.StartPickingTaskCommandHandler {
	var f commands.PickingUoWFactory = FuncPickingUoWFactory(func() commands.PickingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartPickingTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordPickLineCommandHandler() commands.RecordPickLineCommandHandler {
	var f commands.PickingUoWFactory = FuncPickingUoWFactory(func() commands.PickingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordPickLineCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCompletePickingTaskCommandHandler() commands.CompletePickingTaskCommandHandler {
	var f commands.PickingUoWFactory = FuncPickingUoWFactory(func() commands.PickingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompletePickingTaskCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCancelPickingTaskCommandHandler() commands.CancelPickingTaskCommandHandler {
	var f commands.PickingUoWFactory = FuncPickingUoWFactory(func() commands.PickingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelPickingTaskCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCreateReceivingTaskCommandHandler() commands.CreateReceivingTaskCommandHandler {
	var f commands.ReceivingUoWFactory = FuncReceivingUoWFactory(func() commands.ReceivingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateReceivingTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateStartReceivingTaskCommandHandler() commands.StartReceivingTaskCommandHandler {
	var f commands.ReceivingUoWFactory = FuncReceivingUoWFactory(func() commands.ReceivingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartReceivingTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordActualItemCommandHandler() commands.RecordActualItemCommandHandler {
	var f commands.ReceivingUoWFactory = FuncReceivingUoWFactory(func() commands.ReceivingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordActualItemCommandHandler(f)
}

func (c *CompositionRoot) CreateReconcileReceivingTaskCommandHandler() commands.ReconcileReceivingTaskCommandHandler {
	var f commands.ReceivingUoWFactory = FuncReceivingUoWFactory(func() commands.ReceivingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileReceivingTaskCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCheckReplenishmentCommandHandler() commands.CheckReplenishmentCommandHandler {
	var f commands.ReceivingUoWFactory = FuncReceivingUoWFactory(func() commands.ReceivingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckReplenishmentCommandHandler(f)
}

func (c *CompositionRoot) CreateAuditStockProjectionCommandHandler() commands.AuditStockProjectionCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAuditStockProjectionCommandHandler(f)
}

func (c *CompositionRoot) CreateGetStockLevelsQueryHandler() queries.GetStockLevelsQueryHandler {
	return queries.NewGetStockLevelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStockMovementsQueryHandler() queries.GetStockMovementsQueryHandler {
	return queries.NewGetStockMovementsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPickingTasksQueryHandler() queries.GetPickingTasksQueryHandler {
	return queries.NewGetPickingTasksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReceivingTasksQueryHandler() queries.GetReceivingTasksQueryHandler {
	return queries.NewGetReceivingTasksQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every command and query handler into the API server.
func (c *CompositionRoot) CreateHTTPServer() *apihttp.Server {
	return apihttp.NewServer(
		c.CreateRegisterInventoryItemCommandHandler(),
		c.CreateReserveOrderStockCommandHandler(),
		c.CreateReleaseOrderStockCommandHandler(),
		c.CreateAdjustStockCommandHandler(),
		c.CreateAssignPickingTaskCommandHandler(),
		c.CreateStartPickingTaskCommandHandler(),
		c.CreateRecordPickLineCommandHandler(),
		c.CreateCompletePickingTaskCommandHandler(),
		c.CreateCancelPickingTaskCommandHandler(),
		c.CreateCreateReceivingTaskCommandHandler(),
		c.CreateStartReceivingTaskCommandHandler(),
		c.CreateRecordActualItemCommandHandler(),
		c.CreateReconcileReceivingTaskCommandHandler(),
		c.CreateGetStockLevelsQueryHandler(),
		c.CreateGetStockMovementsQueryHandler(),
		c.CreateGetPickingTasksQueryHandler(),
		c.CreateGetReceivingTasksQueryHandler(),
	)
}

// CreateJobManager wires the background jobs to their command handlers.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCheckReplenishmentCommandHandler(),
		c.CreateAuditStockProjectionCommandHandler(),
		c.logger,
	)
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncPickingUoWFactory func() commands.PickingUoW

func (f FuncPickingUoWFactory) Create() commands.PickingUoW {
	return f()
}

type FuncReceivingUoWFactory func() commands.ReceivingUoW

func (f FuncReceivingUoWFactory) Create() commands.ReceivingUoW {
	return f()
}
