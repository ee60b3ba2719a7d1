package commands

import (
	"errors"

	"warehousing/internal/pkg/guard"
)

var ErrCheckReplenishmentCommandIsNotConstructed = errors.New(
	"CheckReplenishmentCommand must be created via NewCheckReplenishmentCommand constructor",
)

// CheckReplenishmentCommand triggers a scan for SKUs whose available quantity
// has fallen to their reorder point. Each such SKU without an already open
// receiving task gets a new one announcing its reorder quantity.
//
// Example:
//
//	cmd := NewCheckReplenishmentCommand()
//	handler := NewCheckReplenishmentCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
type CheckReplenishmentCommand struct {
	guard guard.ConstructorGuard
}

// NewCheckReplenishmentCommand creates a new command to trigger a replenishment scan.
// This is a parameterless command that initiates the reorder-point check.
func NewCheckReplenishmentCommand() CheckReplenishmentCommand {
	return CheckReplenishmentCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *CheckReplenishmentCommand) Validate() error {
	return c.guard.Validate(
		ErrCheckReplenishmentCommandIsNotConstructed,
	)
}
