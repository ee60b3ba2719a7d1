package http

import (
	"net/http"
	"strconv"

	"warehousing/internal/core/application/usecases/commands"
	"warehousing/internal/core/application/usecases/queries"
	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// RegisterItemRequest starts tracking a SKU at a slot location.
type RegisterItemRequest struct {
	WarehouseID     string `json:"warehouse_id"`
	SKU             string `json:"sku"`
	Aisle           string `json:"aisle"`
	Rack            string `json:"rack"`
	Shelf           string `json:"shelf"`
	Bin             string `json:"bin"`
	ReorderPoint    int    `json:"reorder_point"`
	ReorderQuantity int    `json:"reorder_quantity"`
	MinStock        int    `json:"min_stock"`
	MaxStock        int    `json:"max_stock"`
}

// RegisterInventoryItem handles POST /api/v1/inventory/items - registers a
// SKU for tracking with zero initial stock.
func (s *Server) RegisterInventoryItem(ctx echo.Context) error {
	var request RegisterItemRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	warehouseID, err := kernel.UUIDFromString(request.WarehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse_id: "+err.Error())
	}

	location, err := kernel.NewLocation(request.Aisle, request.Rack, request.Shelf, request.Bin)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	cmd, err := commands.NewRegisterInventoryItemCommand(warehouseID, request.SKU, location,
		inventory.ReorderPolicy{
			ReorderPoint:    request.ReorderPoint,
			ReorderQuantity: request.ReorderQuantity,
			MinStock:        request.MinStock,
			MaxStock:        request.MaxStock,
		})
	if err != nil {
		return badRequest(ctx, "Invalid item data: "+err.Error())
	}

	if handleErr := s.registerInventoryItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ReservationLineRequest is one order line in a reservation request.
type ReservationLineRequest struct {
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	WarehouseID string `json:"warehouse_id"`
}

// CreateOrderRequest reserves stock for an order across warehouses.
type CreateOrderRequest struct {
	OrderID string                   `json:"order_id,omitempty"`
	Lines   []ReservationLineRequest `json:"lines"`
}

// CreateOrderResponse reports the order the reservation was booked under.
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// CreateOrder handles POST /api/v1/orders - reserves stock for an order and
// spawns its picking tasks. An omitted order_id is generated server side.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	if request.OrderID != "" {
		parsed, err := kernel.UUIDFromString(request.OrderID)
		if err != nil {
			return badRequest(ctx, "Invalid order_id: "+err.Error())
		}
		orderID = parsed
	}

	lines := make([]commands.ReservationLine, 0, len(request.Lines))
	for _, line := range request.Lines {
		warehouseID, err := kernel.UUIDFromString(line.WarehouseID)
		if err != nil {
			return badRequest(ctx, "Invalid warehouse_id: "+err.Error())
		}
		lines = append(lines, commands.ReservationLine{
			SKU:         line.SKU,
			Quantity:    line.Quantity,
			WarehouseID: warehouseID,
		})
	}

	cmd, err := commands.NewReserveOrderStockCommand(orderID, lines)
	if err != nil {
		return badRequest(ctx, "Invalid reservation data: "+err.Error())
	}

	if handleErr := s.reserveOrderStockHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// CancelOrder handles DELETE /api/v1/orders/:orderId - releases the order's
// outstanding reservations and cancels its open picking tasks. Releasing an
// order with nothing outstanding is a no-op.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	reason := ctx.QueryParam("reason")
	if reason == "" {
		reason = "order cancelled"
	}

	cmd, err := commands.NewReleaseOrderStockCommand(orderID, reason)
	if err != nil {
		return badRequest(ctx, "Invalid release data: "+err.Error())
	}

	if handleErr := s.releaseOrderStockHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StockLevel is one SKU's projection row in the inventory listing.
type StockLevel struct {
	SKU          string `json:"sku"`
	OnHand       int    `json:"on_hand"`
	Reserved     int    `json:"reserved"`
	Available    int    `json:"available"`
	Slot         string `json:"slot"`
	ReorderPoint int    `json:"reorder_point"`
}

// GetInventory handles GET /api/v1/inventory - lists current stock levels
// of one warehouse.
func (s *Server) GetInventory(ctx echo.Context) error {
	warehouseID, err := kernel.UUIDFromString(ctx.QueryParam("warehouse_id"))
	if err != nil {
		return badRequest(ctx, "Invalid warehouse_id: "+err.Error())
	}

	query, err := queries.NewGetStockLevelsQuery(warehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	levels, err := s.getStockLevelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]StockLevel, len(levels))
	for i, level := range levels {
		response[i] = StockLevel{
			SKU:          level.SKU,
			OnHand:       level.OnHand,
			Reserved:     level.Reserved,
			Available:    level.Available,
			Slot:         level.Slot,
			ReorderPoint: level.ReorderPoint,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StockMovement is one ledger entry in the movement history listing.
type StockMovement struct {
	ID             string  `json:"id"`
	Kind           string  `json:"kind"`
	QuantityDelta  int     `json:"quantity_delta"`
	RelatedOrderID *string `json:"related_order_id,omitempty"`
	RelatedTaskID  *string `json:"related_task_id,omitempty"`
	Reason         string  `json:"reason"`
	PerformedBy    string  `json:"performed_by"`
	OccurredAt     string  `json:"occurred_at"`
}

// GetStockMovements handles GET /api/v1/inventory/:sku/movements - returns
// the most recent ledger entries of one SKU.
func (s *Server) GetStockMovements(ctx echo.Context) error {
	warehouseID, err := kernel.UUIDFromString(ctx.QueryParam("warehouse_id"))
	if err != nil {
		return badRequest(ctx, "Invalid warehouse_id: "+err.Error())
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid limit: "+err.Error())
		}
	}

	query, err := queries.NewGetStockMovementsQuery(warehouseID, ctx.Param("sku"), limit)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	movements, err := s.getStockMovementsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]StockMovement, len(movements))
	for i, movement := range movements {
		var orderID *string
		if movement.RelatedOrderID != nil {
			raw := movement.RelatedOrderID.String()
			orderID = &raw
		}

		var taskID *string
		if movement.RelatedTaskID != nil {
			raw := movement.RelatedTaskID.String()
			taskID = &raw
		}

		response[i] = StockMovement{
			ID:             movement.ID.String(),
			Kind:           movement.Kind,
			QuantityDelta:  movement.QuantityDelta,
			RelatedOrderID: orderID,
			RelatedTaskID:  taskID,
			Reason:         movement.Reason,
			PerformedBy:    movement.PerformedBy,
			OccurredAt:     movement.OccurredAt.Format("2006-01-02T15:04:05.000Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateAdjustmentRequest corrects one SKU's on-hand count after a physical
// count or damage write-off.
type CreateAdjustmentRequest struct {
	WarehouseID string `json:"warehouse_id"`
	SKU         string `json:"sku"`
	Delta       int    `json:"delta"`
	Reason      string `json:"reason"`
	PerformedBy string `json:"performed_by"`
}

// CreateAdjustment handles POST /api/v1/inventory/adjustments - records a
// manual stock adjustment with a mandatory audit trail.
func (s *Server) CreateAdjustment(ctx echo.Context) error {
	var request CreateAdjustmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	warehouseID, err := kernel.UUIDFromString(request.WarehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse_id: "+err.Error())
	}

	cmd, err := commands.NewAdjustStockCommand(warehouseID, request.SKU,
		request.Delta, request.Reason, request.PerformedBy)
	if err != nil {
		return badRequest(ctx, "Invalid adjustment data: "+err.Error())
	}

	if handleErr := s.adjustStockHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}
