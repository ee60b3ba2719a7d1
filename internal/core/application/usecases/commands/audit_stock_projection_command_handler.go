package commands

import (
	"context"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"
)

// ProjectionDivergence reports one inventory item whose cached quantities no
// longer match the replay of its stock movements.
type ProjectionDivergence struct {
	WarehouseID       kernel.UUID
	SKU               string
	ProjectedOnHand   int
	ReplayedOnHand    int
	ProjectedReserved int
	ReplayedReserved  int
}

// AuditStockProjectionCommandHandler replays the stock ledger for every
// tracked item and reports items whose projection diverges from the replay.
// The audit is read only; reconciling a divergence is a manual operation.
type AuditStockProjectionCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewAuditStockProjectionCommandHandler creates a handler for projection audits.
func NewAuditStockProjectionCommandHandler(uowFactory InventoryUoWFactory) AuditStockProjectionCommandHandler {
	return AuditStockProjectionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the audit command. Returns one entry per diverging item;
// an empty slice means the projection matches the ledger everywhere.
func (h AuditStockProjectionCommandHandler) Handle(ctx context.Context, command AuditStockProjectionCommand) ([]ProjectionDivergence, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items, err := uow.InventoryRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ledger := uow.StockLedger()

	var divergences []ProjectionDivergence
	for _, item := range items {
		movements, ledgerErr := ledger.GetBySKU(ctx, item.WarehouseID(), item.SKU())
		if ledgerErr != nil {
			return nil, ledgerErr
		}

		onHand, reserved := inventory.Replay(movements)
		if onHand == item.OnHand() && reserved == item.Reserved() {
			continue
		}

		divergences = append(divergences, ProjectionDivergence{
			WarehouseID:       item.WarehouseID(),
			SKU:               item.SKU(),
			ProjectedOnHand:   item.OnHand(),
			ReplayedOnHand:    onHand,
			ProjectedReserved: item.Reserved(),
			ReplayedReserved:  reserved,
		})
	}

	return divergences, nil
}
