package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/receiving"
)

// GetReceivingTasksQueryHandler reads receiving task summaries for list views.
type GetReceivingTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetReceivingTasksQueryHandler creates a handler for receiving task queries.
func NewGetReceivingTasksQueryHandler(db *gorm.DB) GetReceivingTasksQueryHandler {
	return GetReceivingTasksQueryHandler{db: db}
}

// Handle executes the query, joining expected line and discrepancy counts
// onto each task. Results are sorted by task ID for consistent output.
func (h GetReceivingTasksQueryHandler) Handle(
	ctx context.Context,
	query GetReceivingTasksQuery,
) ([]GetReceivingTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			t.id,
			t.warehouse_id,
			t.supplier,
			t.status,
			(SELECT COUNT(*) FROM receiving_expected_lines e WHERE e.task_id = t.id),
			(SELECT COUNT(*) FROM receiving_discrepancies d WHERE d.task_id = t.id)
		FROM receiving_tasks t
	`
	args := make([]any, 0, 1)
	if query.Status() != nil {
		sql += ` WHERE t.status = ?`
		args = append(args, int(*query.Status()))
	}
	sql += ` ORDER BY t.id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]GetReceivingTasksQueryResponse, 0)
	for rows.Next() {
		var task GetReceivingTasksQueryResponse
		var id, warehouseID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&warehouseID,
			&task.Supplier,
			&status,
			&task.ExpectedLines,
			&task.DiscrepancyCount,
		)
		if err != nil {
			return nil, err
		}

		if task.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if task.WarehouseID, err = kernel.UUIDFromBytes(warehouseID[:]); err != nil {
			return nil, err
		}
		task.Status = receiving.Status(status).String()

		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
