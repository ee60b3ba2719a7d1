package commands

import (
	"errors"

	"warehousing/internal/pkg/guard"
)

var ErrAuditStockProjectionCommandIsNotConstructed = errors.New(
	"AuditStockProjectionCommand must be created via NewAuditStockProjectionCommand constructor",
)

// AuditStockProjectionCommand triggers a comparison of every inventory item
// against the quantities replayed from its stock movements.
//
// Example:
//
//	cmd := NewAuditStockProjectionCommand()
//	handler := NewAuditStockProjectionCommandHandler(uowFactory)
//	divergences, err := handler.Handle(ctx, cmd)
type AuditStockProjectionCommand struct {
	guard guard.ConstructorGuard
}

// NewAuditStockProjectionCommand creates a new command to audit the inventory
// projection against the stock ledger.
func NewAuditStockProjectionCommand() AuditStockProjectionCommand {
	return AuditStockProjectionCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AuditStockProjectionCommand) Validate() error {
	return c.guard.Validate(
		ErrAuditStockProjectionCommandIsNotConstructed,
	)
}
