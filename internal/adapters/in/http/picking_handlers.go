package http

import (
	"net/http"

	"warehousing/internal/core/application/usecases/commands"
	"warehousing/internal/core/application/usecases/queries"
	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/picking"

	"github.com/labstack/echo/v4"
)

// PickingTask is one row in the picking task listing.
type PickingTask struct {
	ID            string `json:"id"`
	OrderID       string `json:"order_id"`
	WarehouseID   string `json:"warehouse_id"`
	Status        string `json:"status"`
	Assignee      string `json:"assignee,omitempty"`
	LineCount     int    `json:"line_count"`
	TotalQuantity int    `json:"total_quantity"`
}

// GetPickingTasks handles GET /api/v1/picking-tasks - lists picking tasks,
// optionally filtered by status.
func (s *Server) GetPickingTasks(ctx echo.Context) error {
	var statusFilter *picking.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := picking.StatusFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid status filter: "+err.Error())
		}
		statusFilter = &status
	}

	query, err := queries.NewGetPickingTasksQuery(statusFilter)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	tasks, err := s.getPickingTasksHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]PickingTask, len(tasks))
	for i, task := range tasks {
		response[i] = PickingTask{
			ID:            task.ID.String(),
			OrderID:       task.OrderID.String(),
			WarehouseID:   task.WarehouseID.String(),
			Status:        task.Status,
			Assignee:      task.Assignee,
			LineCount:     task.LineCount,
			TotalQuantity: task.TotalQuantity,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignPickingTaskRequest claims a task for a warehouse worker.
type AssignPickingTaskRequest struct {
	Worker string `json:"worker"`
}

// AssignPickingTask handles POST /api/v1/picking-tasks/:taskId/assign.
func (s *Server) AssignPickingTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id: "+err.Error())
	}

	var request AssignPickingTaskRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignPickingTaskCommand(taskID, request.Worker)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	if handleErr := s.assignPickingTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartPickingTask handles POST /api/v1/picking-tasks/:taskId/start.
func (s *Server) StartPickingTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id: "+err.Error())
	}

	cmd, err := commands.NewStartPickingTaskCommand(taskID)
	if err != nil {
		return badRequest(ctx, "Invalid start data: "+err.Error())
	}

	if handleErr := s.startPickingTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordPickLineRequest reports the outcome of picking one line.
// Outcome must be Picked, Short or Damaged.
type RecordPickLineRequest struct {
	SKU            string `json:"sku"`
	QuantityPicked int    `json:"quantity_picked"`
	Outcome        string `json:"outcome"`
}

// RecordPickLine handles POST /api/v1/picking-tasks/:taskId/lines - records
// one line's pick result. A picked quantity immediately depletes stock.
func (s *Server) RecordPickLine(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id: "+err.Error())
	}

	var request RecordPickLineRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	outcome, err := picking.LineStatusFromString(request.Outcome)
	if err != nil {
		return badRequest(ctx, "Invalid outcome: "+err.Error())
	}

	cmd, err := commands.NewRecordPickLineCommand(taskID, request.SKU, request.QuantityPicked, outcome)
	if err != nil {
		return badRequest(ctx, "Invalid line data: "+err.Error())
	}

	if handleErr := s.recordPickLineHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompletePickingTask handles POST /api/v1/picking-tasks/:taskId/complete -
// finishes a task whose lines are all recorded; short remainders are released.
func (s *Server) CompletePickingTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id: "+err.Error())
	}

	cmd, err := commands.NewCompletePickingTaskCommand(taskID)
	if err != nil {
		return badRequest(ctx, "Invalid completion data: "+err.Error())
	}

	if handleErr := s.completePickingTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelPickingTaskRequest abandons a task before completion.
type CancelPickingTaskRequest struct {
	Reason string `json:"reason"`
}

// CancelPickingTask handles POST /api/v1/picking-tasks/:taskId/cancel -
// cancels a non-terminal task and releases its unpicked reservations.
func (s *Server) CancelPickingTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id: "+err.Error())
	}

	var request CancelPickingTaskRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelPickingTaskCommand(taskID, request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation data: "+err.Error())
	}

	if handleErr := s.cancelPickingTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}
