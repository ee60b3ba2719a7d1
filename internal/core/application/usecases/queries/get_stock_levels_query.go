// Package queries contains read-side operations of the CQRS architecture.
// Query handlers bypass the domain model and read projection tables directly
// with raw SQL, returning flat response structs shaped for the API.
package queries

import (
	"errors"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/guard"
)

var ErrGetStockLevelsQueryIsNotConstructed = errors.New(
	"GetStockLevelsQuery must be created via NewGetStockLevelsQuery constructor",
)

// GetStockLevelsQuery retrieves the stock levels of every SKU tracked in one
// warehouse.
//
// Example:
//
//	query, err := NewGetStockLevelsQuery(warehouseID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetStockLevelsQueryHandler(db)
//	levels, err := handler.Handle(ctx, query)
type GetStockLevelsQuery struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStockLevelsQuery creates a query for one warehouse's stock levels.
func NewGetStockLevelsQuery(warehouseID kernel.UUID) (GetStockLevelsQuery, error) {
	query := GetStockLevelsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := warehouseID.Validate(); err != nil {
		return GetStockLevelsQuery{}, err
	}
	query.warehouseID = warehouseID

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStockLevelsQuery) Validate() error {
	return q.guard.Validate(ErrGetStockLevelsQueryIsNotConstructed)
}

// WarehouseID returns the warehouse being queried.
func (q GetStockLevelsQuery) WarehouseID() kernel.UUID {
	return q.warehouseID
}

// GetStockLevelsQueryResponse represents one SKU's stock level.
// Available is computed from the stored counters, never read from a column.
type GetStockLevelsQueryResponse struct {
	SKU          string
	OnHand       int
	Reserved     int
	Available    int
	Slot         string
	ReorderPoint int
}
