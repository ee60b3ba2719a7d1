package http

import (
	"net/http"

	"warehousing/internal/core/application/usecases/commands"
	"warehousing/internal/core/application/usecases/queries"
	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/receiving"

	"github.com/labstack/echo/v4"
)

// ReceivingTask is one row in the receiving task listing.
type ReceivingTask struct {
	ID               string `json:"id"`
	WarehouseID      string `json:"warehouse_id"`
	Supplier         string `json:"supplier"`
	Status           string `json:"status"`
	ExpectedLines    int    `json:"expected_lines"`
	DiscrepancyCount int    `json:"discrepancy_count"`
}

// GetReceivingTasks handles GET /api/v1/receiving-tasks - lists receiving
// tasks, optionally filtered by status.
func (s *Server) GetReceivingTasks(ctx echo.Context) error {
	var statusFilter *receiving.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := receiving.StatusFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid status filter: "+err.Error())
		}
		statusFilter = &status
	}

	query, err := queries.NewGetReceivingTasksQuery(statusFilter)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	tasks, err := s.getReceivingTasksHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ReceivingTask, len(tasks))
	for i, task := range tasks {
		response[i] = ReceivingTask{
			ID:               task.ID.String(),
			WarehouseID:      task.WarehouseID.String(),
			Supplier:         task.Supplier,
			Status:           task.Status,
			ExpectedLines:    task.ExpectedLines,
			DiscrepancyCount: task.DiscrepancyCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ExpectedLineRequest is one announced SKU quantity in a delivery.
type ExpectedLineRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// CreateReceivingTaskRequest announces an inbound delivery.
type CreateReceivingTaskRequest struct {
	WarehouseID string                `json:"warehouse_id"`
	Supplier    string                `json:"supplier"`
	Expected    []ExpectedLineRequest `json:"expected"`
}

// CreateReceivingTaskResponse reports the identifier of the created task.
type CreateReceivingTaskResponse struct {
	TaskID string `json:"task_id"`
}

// CreateReceivingTask handles POST /api/v1/receiving-tasks.
func (s *Server) CreateReceivingTask(ctx echo.Context) error {
	var request CreateReceivingTaskRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	warehouseID, err := kernel.UUIDFromString(request.WarehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse_id: "+err.Error())
	}

	expected := make([]receiving.ExpectedLine, 0, len(request.Expected))
	for _, line := range request.Expected {
		expected = append(expected, receiving.ExpectedLine{
			SKU:      line.SKU,
			Quantity: line.Quantity,
		})
	}

	taskID := kernel.NewUUID()
	cmd, err := commands.NewCreateReceivingTaskCommand(taskID, warehouseID, request.Supplier, expected)
	if err != nil {
		return badRequest(ctx, "Invalid task data: "+err.Error())
	}

	if handleErr := s.createReceivingTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateReceivingTaskResponse{TaskID: taskID.String()})
}

// StartReceivingTask handles POST /api/v1/receiving-tasks/:taskId/start.
func (s *Server) StartReceivingTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id: "+err.Error())
	}

	cmd, err := commands.NewStartReceivingTaskCommand(taskID)
	if err != nil {
		return badRequest(ctx, "Invalid start data: "+err.Error())
	}

	if handleErr := s.startReceivingTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordActualItemRequest reports one arrived batch and its condition.
// Condition must be Good, Damaged or Expired.
type RecordActualItemRequest struct {
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	Condition string `json:"condition"`
}

// RecordActualItem handles POST /api/v1/receiving-tasks/:taskId/actuals -
// records one batch of arrived units against an in-progress task.
func (s *Server) RecordActualItem(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id: "+err.Error())
	}

	var request RecordActualItemRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	condition, err := receiving.ConditionFromString(request.Condition)
	if err != nil {
		return badRequest(ctx, "Invalid condition: "+err.Error())
	}

	cmd, err := commands.NewRecordActualItemCommand(taskID, request.SKU, request.Quantity, condition)
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}

	if handleErr := s.recordActualItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReconcileReceivingTask handles POST /api/v1/receiving-tasks/:taskId/reconcile -
// compares announced against received units, commits good stock and itemizes
// every mismatch.
func (s *Server) ReconcileReceivingTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id: "+err.Error())
	}

	cmd, err := commands.NewReconcileReceivingTaskCommand(taskID)
	if err != nil {
		return badRequest(ctx, "Invalid reconcile data: "+err.Error())
	}

	if handleErr := s.reconcileReceivingHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}
