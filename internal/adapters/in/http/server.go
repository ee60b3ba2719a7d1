// Package http exposes the warehouse operations over a REST API built on echo.
// Handlers translate requests into commands and queries, and translate domain
// errors into HTTP status codes: stock shortages, assignment races and invalid
// lifecycle transitions map to 409, unknown objects to 404, malformed input
// to 400.
package http

import (
	"errors"
	"net/http"

	"warehousing/internal/core/application/usecases/commands"
	"warehousing/internal/core/application/usecases/queries"
	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/picking"
	"warehousing/internal/core/domain/model/receiving"
	"warehousing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerInventoryItemHandler commands.RegisterInventoryItemCommandHandler
	reserveOrderStockHandler     commands.ReserveOrderStockCommandHandler
	releaseOrderStockHandler     commands.ReleaseOrderStockCommandHandler
	adjustStockHandler           commands.AdjustStockCommandHandler
	assignPickingTaskHandler     commands.AssignPickingTaskCommandHandler
	startPickingTaskHandler      commands.StartPickingTaskCommandHandler
	recordPickLineHandler        commands.RecordPickLineCommandHandler
	completePickingTaskHandler   commands.CompletePickingTaskCommandHandler
	cancelPickingTaskHandler     commands.CancelPickingTaskCommandHandler
	createReceivingTaskHandler   commands.CreateReceivingTaskCommandHandler
	startReceivingTaskHandler    commands.StartReceivingTaskCommandHandler
	recordActualItemHandler      commands.RecordActualItemCommandHandler
	reconcileReceivingHandler    commands.ReconcileReceivingTaskCommandHandler

	// Query handlers
	getStockLevelsHandler    queries.GetStockLevelsQueryHandler
	getStockMovementsHandler queries.GetStockMovementsQueryHandler
	getPickingTasksHandler   queries.GetPickingTasksQueryHandler
	getReceivingTasksHandler queries.GetReceivingTasksQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	registerInventoryItemHandler commands.RegisterInventoryItemCommandHandler,
	reserveOrderStockHandler commands.ReserveOrderStockCommandHandler,
	releaseOrderStockHandler commands.ReleaseOrderStockCommandHandler,
	adjustStockHandler commands.AdjustStockCommandHandler,
	assignPickingTaskHandler commands.AssignPickingTaskCommandHandler,
	startPickingTaskHandler commands.StartPickingTaskCommandHandler,
	recordPickLineHandler commands.RecordPickLineCommandHandler,
	completePickingTaskHandler commands.CompletePickingTaskCommandHandler,
	cancelPickingTaskHandler commands.CancelPickingTaskCommandHandler,
	createReceivingTaskHandler commands.CreateReceivingTaskCommandHandler,
	startReceivingTaskHandler commands.StartReceivingTaskCommandHandler,
	recordActualItemHandler commands.RecordActualItemCommandHandler,
	reconcileReceivingHandler commands.ReconcileReceivingTaskCommandHandler,
	getStockLevelsHandler queries.GetStockLevelsQueryHandler,
	getStockMovementsHandler queries.GetStockMovementsQueryHandler,
	getPickingTasksHandler queries.GetPickingTasksQueryHandler,
	getReceivingTasksHandler queries.GetReceivingTasksQueryHandler,
) *Server {
	return &Server{
		registerInventoryItemHandler: registerInventoryItemHandler,
		reserveOrderStockHandler:     reserveOrderStockHandler,
		releaseOrderStockHandler:     releaseOrderStockHandler,
		adjustStockHandler:           adjustStockHandler,
		assignPickingTaskHandler:     assignPickingTaskHandler,
		startPickingTaskHandler:      startPickingTaskHandler,
		recordPickLineHandler:        recordPickLineHandler,
		completePickingTaskHandler:   completePickingTaskHandler,
		cancelPickingTaskHandler:     cancelPickingTaskHandler,
		createReceivingTaskHandler:   createReceivingTaskHandler,
		startReceivingTaskHandler:    startReceivingTaskHandler,
		recordActualItemHandler:      recordActualItemHandler,
		reconcileReceivingHandler:    reconcileReceivingHandler,
		getStockLevelsHandler:        getStockLevelsHandler,
		getStockMovementsHandler:     getStockMovementsHandler,
		getPickingTasksHandler:       getPickingTasksHandler,
		getReceivingTasksHandler:     getReceivingTasksHandler,
	}
}

// RegisterRoutes attaches all API routes to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.DELETE("/orders/:orderId", s.CancelOrder)

	api.GET("/inventory", s.GetInventory)
	api.POST("/inventory/items", s.RegisterInventoryItem)
	api.GET("/inventory/:sku/movements", s.GetStockMovements)
	api.POST("/inventory/adjustments", s.CreateAdjustment)

	api.GET("/picking-tasks", s.GetPickingTasks)
	api.POST("/picking-tasks/:taskId/assign", s.AssignPickingTask)
	api.POST("/picking-tasks/:taskId/start", s.StartPickingTask)
	api.POST("/picking-tasks/:taskId/lines", s.RecordPickLine)
	api.POST("/picking-tasks/:taskId/complete", s.CompletePickingTask)
	api.POST("/picking-tasks/:taskId/cancel", s.CancelPickingTask)

	api.GET("/receiving-tasks", s.GetReceivingTasks)
	api.POST("/receiving-tasks", s.CreateReceivingTask)
	api.POST("/receiving-tasks/:taskId/start", s.StartReceivingTask)
	api.POST("/receiving-tasks/:taskId/actuals", s.RecordActualItem)
	api.POST("/receiving-tasks/:taskId/reconcile", s.ReconcileReceivingTask)
}

// respondError maps a use-case error to the HTTP status the API contract defines.
func respondError(ctx echo.Context, err error) error {
	code := statusCode(err)
	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}

func statusCode(err error) int {
	var insufficient *inventory.InsufficientStockError

	switch {
	case errors.As(err, &insufficient),
		errors.Is(err, picking.ErrAlreadyAssigned),
		errors.Is(err, picking.ErrInvalidTransition),
		errors.Is(err, picking.ErrLineAlreadyRecorded),
		errors.Is(err, picking.ErrLinesNotTerminal),
		errors.Is(err, receiving.ErrInvalidTransition),
		errors.Is(err, inventory.ErrVersionConflict),
		errors.Is(err, picking.ErrVersionConflict),
		errors.Is(err, receiving.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, picking.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// badRequest is the response for requests that cannot even be parsed.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
