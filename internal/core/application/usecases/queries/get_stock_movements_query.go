package queries

import (
	"errors"
	"time"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/errs"
	"warehousing/internal/pkg/guard"
)

var ErrGetStockMovementsQueryIsNotConstructed = errors.New(
	"GetStockMovementsQuery must be created via NewGetStockMovementsQuery constructor",
)

const defaultMovementsLimit = 100

// GetStockMovementsQuery retrieves the recent ledger history of one SKU in
// one warehouse, newest first.
type GetStockMovementsQuery struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	sku         string
	limit       int

	guard guard.ConstructorGuard
}

// NewGetStockMovementsQuery creates a query for one SKU's movement history.
// A non-positive limit falls back to the default page size.
func NewGetStockMovementsQuery(warehouseID kernel.UUID, sku string, limit int) (GetStockMovementsQuery, error) {
	query := GetStockMovementsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := warehouseID.Validate(); err != nil {
		return GetStockMovementsQuery{}, err
	}
	if sku == "" {
		return GetStockMovementsQuery{}, errs.NewValueIsRequiredError("sku")
	}
	if limit <= 0 {
		limit = defaultMovementsLimit
	}

	query.warehouseID = warehouseID
	query.sku = sku
	query.limit = limit

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStockMovementsQuery) Validate() error {
	return q.guard.Validate(ErrGetStockMovementsQueryIsNotConstructed)
}

// WarehouseID returns the warehouse being queried.
func (q GetStockMovementsQuery) WarehouseID() kernel.UUID {
	return q.warehouseID
}

// SKU returns the SKU whose history is queried.
func (q GetStockMovementsQuery) SKU() string {
	return q.sku
}

// Limit returns the maximum number of returned movements.
func (q GetStockMovementsQuery) Limit() int {
	return q.limit
}

// GetStockMovementsQueryResponse represents one ledger movement.
type GetStockMovementsQueryResponse struct {
	ID             kernel.UUID
	Kind           string
	QuantityDelta  int
	RelatedOrderID *kernel.UUID
	RelatedTaskID  *kernel.UUID
	Reason         string
	PerformedBy    string
	OccurredAt     time.Time
}
