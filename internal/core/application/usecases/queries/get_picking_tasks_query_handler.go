package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/picking"
)

// GetPickingTasksQueryHandler reads picking task summaries for list views.
type GetPickingTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetPickingTasksQueryHandler creates a handler for picking task queries.
func NewGetPickingTasksQueryHandler(db *gorm.DB) GetPickingTasksQueryHandler {
	return GetPickingTasksQueryHandler{db: db}
}

// Handle executes the query, joining line counts onto each task.
// Results are sorted by task ID for consistent output.
func (h GetPickingTasksQueryHandler) Handle(
	ctx context.Context,
	query GetPickingTasksQuery,
) ([]GetPickingTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			t.id,
			t.order_id,
			t.warehouse_id,
			t.status,
			t.assignee,
			COUNT(l.sku),
			COALESCE(SUM(l.quantity_requested), 0)
		FROM picking_tasks t
		LEFT JOIN picking_task_lines l ON l.task_id = t.id
	`
	args := make([]any, 0, 1)
	if query.Status() != nil {
		sql += ` WHERE t.status = ?`
		args = append(args, int(*query.Status()))
	}
	sql += `
		GROUP BY t.id, t.order_id, t.warehouse_id, t.status, t.assignee
		ORDER BY t.id
	`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]GetPickingTasksQueryResponse, 0)
	for rows.Next() {
		var task GetPickingTasksQueryResponse
		var id, orderID, warehouseID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&orderID,
			&warehouseID,
			&status,
			&task.Assignee,
			&task.LineCount,
			&task.TotalQuantity,
		)
		if err != nil {
			return nil, err
		}

		if task.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if task.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if task.WarehouseID, err = kernel.UUIDFromBytes(warehouseID[:]); err != nil {
			return nil, err
		}
		task.Status = picking.Status(status).String()

		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
