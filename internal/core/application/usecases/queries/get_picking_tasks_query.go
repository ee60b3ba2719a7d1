package queries

import (
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/picking"
	"warehousing/internal/pkg/guard"
)

var (
	ErrGetPickingTasksQueryIsNotConstructed = errors.New(
		"GetPickingTasksQuery must be created via NewGetPickingTasksQuery constructor",
	)
	ErrPickingStatusFilterIsInvalid = errors.New("picking task status filter is invalid")
)

// GetPickingTasksQuery retrieves picking tasks, optionally filtered by
// status. A nil filter returns every task.
type GetPickingTasksQuery struct { //nolint:recvcheck //using for validation
	status *picking.Status

	guard guard.ConstructorGuard
}

// NewGetPickingTasksQuery creates a query for picking tasks.
func NewGetPickingTasksQuery(status *picking.Status) (GetPickingTasksQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetPickingTasksQuery{}, ErrPickingStatusFilterIsInvalid
		}
	}

	return GetPickingTasksQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPickingTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetPickingTasksQueryIsNotConstructed)
}

// Status returns the optional status filter.
func (q GetPickingTasksQuery) Status() *picking.Status {
	return q.status
}

// GetPickingTasksQueryResponse represents one picking task list entry.
type GetPickingTasksQueryResponse struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	WarehouseID   kernel.UUID
	Status        string
	Assignee      string
	LineCount     int
	TotalQuantity int
}
