package queries

import (
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/core/domain/model/receiving"
	"warehousing/internal/pkg/guard"
)

var (
	ErrGetReceivingTasksQueryIsNotConstructed = errors.New(
		"GetReceivingTasksQuery must be created via NewGetReceivingTasksQuery constructor",
	)
	ErrReceivingStatusFilterIsInvalid = errors.New("receiving task status filter is invalid")
)

// GetReceivingTasksQuery retrieves receiving tasks, optionally filtered by
// status. A nil filter returns every task.
type GetReceivingTasksQuery struct { //nolint:recvcheck //using for validation
	status *receiving.Status

	guard guard.ConstructorGuard
}

// NewGetReceivingTasksQuery creates a query for receiving tasks.
func NewGetReceivingTasksQuery(status *receiving.Status) (GetReceivingTasksQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetReceivingTasksQuery{}, ErrReceivingStatusFilterIsInvalid
		}
	}

	return GetReceivingTasksQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReceivingTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetReceivingTasksQueryIsNotConstructed)
}

// Status returns the optional status filter.
func (q GetReceivingTasksQuery) Status() *receiving.Status {
	return q.status
}

// GetReceivingTasksQueryResponse represents one receiving task list entry.
type GetReceivingTasksQueryResponse struct {
	ID               kernel.UUID
	WarehouseID      kernel.UUID
	Supplier         string
	Status           string
	ExpectedLines    int
	DiscrepancyCount int
}
