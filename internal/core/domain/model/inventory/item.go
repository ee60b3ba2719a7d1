package inventory

import (
	"errors"
	"fmt"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through NewItem or RestoreItem. This ensures all items are properly validated.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

	// ErrInsufficientStock is the unwrap target for reservation attempts that
	// exceed the available quantity. It is a business rejection, never retried.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrVersionConflict indicates a lost optimistic-concurrency race on an
	// item: the row version changed between read and write. Callers retry
	// with a fresh read.
	ErrVersionConflict = errors.New("item version conflict")
)

// InsufficientStockError reports a reservation attempt that exceeded the
// available quantity for one SKU.
type InsufficientStockError struct {
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.SKU, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ReorderPolicy carries the advisory replenishment thresholds for one SKU.
// The thresholds never participate in any stock invariant; they only drive
// the replenishment sweep that opens receiving tasks.
type ReorderPolicy struct {
	ReorderPoint    int
	ReorderQuantity int
	MinStock        int
	MaxStock        int
}

// Validate checks the policy for internal consistency.
func (p ReorderPolicy) Validate() error {
	if p.ReorderPoint < 0 || p.ReorderQuantity < 0 || p.MinStock < 0 || p.MaxStock < 0 {
		return errs.NewValueIsInvalidError("reorder policy thresholds must not be negative")
	}
	if p.MaxStock > 0 && p.MinStock > p.MaxStock {
		return errs.NewValueIsInvalidErrorWithCause("reorder policy",
			fmt.Errorf("minStock %d exceeds maxStock %d", p.MinStock, p.MaxStock))
	}
	return nil
}

// Item is the per-SKU, per-warehouse inventory aggregate. It holds the live
// counter pair (onHand, reserved) and is the single enforcement point of the
// stock invariant 0 <= reserved <= onHand. Available quantity is always
// derived and never stored.
//
// Every mutating method records the matching ledger Movement on the
// aggregate; repositories persist counters and recorded movements in one
// transaction. The version field supports optimistic concurrency: the
// repository update succeeds only when the stored version still matches the
// version this aggregate was loaded with.
type Item struct {
	// sku identifies the stock-keeping unit
	sku string

	// warehouseID identifies the warehouse holding the stock
	warehouseID kernel.UUID

	// onHand is the quantity physically present, never negative
	onHand int

	// reserved is the quantity held against pending orders, never exceeds onHand
	reserved int

	// policy carries the advisory replenishment thresholds
	policy ReorderPolicy

	// location is the storage slot assigned by the slotting system
	location kernel.Location

	// version is the optimistic-concurrency token, monotonically increasing
	version int64

	// movements are the ledger entries recorded since the aggregate was loaded
	movements []Movement

	// guard ensures the aggregate was created via a constructor
	guard kernel.ConstructorGuard
}

// NewItem registers a new SKU in a warehouse with empty counters.
// Stock arrives later through receiving tasks or adjustments.
func NewItem(sku string, warehouseID kernel.UUID, location kernel.Location, policy ReorderPolicy) (*Item, error) {
	item := &Item{
		version: 1,
		guard:   kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setSKU(sku),
		item.setWarehouseID(warehouseID),
		item.setLocation(location),
		item.setPolicy(policy),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an Item from persistence, including its counters
// and stored version. The counter pair must already satisfy the stock
// invariant; persisted state violating it is a programming error upstream.
func RestoreItem(
	sku string,
	warehouseID kernel.UUID,
	onHand, reserved int,
	location kernel.Location,
	policy ReorderPolicy,
	version int64,
) (*Item, error) {
	item := &Item{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setSKU(sku),
		item.setWarehouseID(warehouseID),
		item.setLocation(location),
		item.setPolicy(policy),
	); err != nil {
		return nil, err
	}

	if onHand < 0 || reserved < 0 || reserved > onHand {
		return nil, errs.NewValueIsInvalidErrorWithCause("stock counters",
			fmt.Errorf("onHand %d and reserved %d violate the stock invariant", onHand, reserved))
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("item version")
	}

	item.onHand = onHand
	item.reserved = reserved
	item.version = version
	return item, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil || i.guard.Validate(ErrItemIsNotConstructed) != nil {
		return ErrItemIsNotConstructed
	}
	return nil
}

// SKU returns the stock-keeping unit identity.
func (i *Item) SKU() string {
	return i.sku
}

// WarehouseID returns the warehouse identity.
func (i *Item) WarehouseID() kernel.UUID {
	return i.warehouseID
}

// OnHand returns the quantity physically present.
func (i *Item) OnHand() int {
	return i.onHand
}

// Reserved returns the quantity held against pending orders.
func (i *Item) Reserved() int {
	return i.reserved
}

// Available returns the quantity free for new reservations.
// It is always computed as onHand minus reserved and never stored.
func (i *Item) Available() int {
	return i.onHand - i.reserved
}

// Policy returns the advisory replenishment thresholds.
func (i *Item) Policy() ReorderPolicy {
	return i.policy
}

// Location returns the storage slot of the SKU.
func (i *Item) Location() kernel.Location {
	return i.location
}

// Version returns the optimistic-concurrency token the aggregate was loaded with.
func (i *Item) Version() int64 {
	return i.version
}

// BelowReorderPoint reports whether available stock has fallen to or under
// the advisory reorder point. A zero reorder point disables the signal.
func (i *Item) BelowReorderPoint() bool {
	return i.policy.ReorderPoint > 0 && i.Available() <= i.policy.ReorderPoint
}

// Reserve places a soft hold of qty units for the given order.
// Fails with an InsufficientStockError when fewer than qty units are
// available; the counters are untouched on failure.
func (i *Item) Reserve(qty int, orderID kernel.UUID, performedBy string) error {
	if err := i.validateQty(qty); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	if i.Available() < qty {
		return &InsufficientStockError{SKU: i.sku, Requested: qty, Available: i.Available()}
	}

	movement, err := NewMovement(i.sku, i.warehouseID, Reservation, qty, &orderID, nil,
		"order reservation", performedBy)
	if err != nil {
		return err
	}

	i.reserved += qty
	i.movements = append(i.movements, movement)
	return nil
}

// Release returns up to qty reserved units to the available pool.
// The release clamps at the currently reserved quantity and never raises
// onHand. Releasing when nothing is reserved records no movement, which is
// what makes repeated releases for the same order harmless.
func (i *Item) Release(qty int, orderID *kernel.UUID, taskID *kernel.UUID, reason, performedBy string) error {
	if err := i.validateQty(qty); err != nil {
		return err
	}

	effective := qty
	if effective > i.reserved {
		effective = i.reserved
	}
	if effective == 0 {
		return nil
	}

	movement, err := NewMovement(i.sku, i.warehouseID, ReservationRelease, -effective,
		orderID, taskID, reason, performedBy)
	if err != nil {
		return err
	}

	i.reserved -= effective
	i.movements = append(i.movements, movement)
	return nil
}

// CommitPick converts qty reserved units into a permanent depletion: both
// onHand and reserved decrease. The quantity must already be reserved;
// committing more than is reserved is a programming error upstream.
func (i *Item) CommitPick(qty int, orderID kernel.UUID, taskID kernel.UUID, performedBy string) error {
	if err := i.validateQty(qty); err != nil {
		return err
	}
	if qty > i.reserved {
		return errs.NewValueIsOutOfRangeError("pick quantity", qty, 1, i.reserved)
	}

	movement, err := NewMovement(i.sku, i.warehouseID, Outbound, -qty, &orderID, &taskID,
		"pick committed", performedBy)
	if err != nil {
		return err
	}

	i.onHand -= qty
	i.reserved -= qty
	i.movements = append(i.movements, movement)
	return nil
}

// ReceiveInbound adds qty received units to onHand. Reserved is untouched.
func (i *Item) ReceiveInbound(qty int, taskID kernel.UUID, performedBy string) error {
	if err := i.validateQty(qty); err != nil {
		return err
	}

	movement, err := NewMovement(i.sku, i.warehouseID, Inbound, qty, nil, &taskID,
		"receiving task", performedBy)
	if err != nil {
		return err
	}

	i.onHand += qty
	i.movements = append(i.movements, movement)
	return nil
}

// Adjust applies a signed manual correction to onHand. The correction must
// not push onHand negative or below the reserved quantity.
func (i *Item) Adjust(delta int, reason, performedBy string) error {
	if delta == 0 {
		return errs.NewValueIsInvalidError("adjustment delta must not be zero")
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("adjustment reason")
	}

	newOnHand := i.onHand + delta
	if newOnHand < 0 || newOnHand < i.reserved {
		return errs.NewValueIsInvalidErrorWithCause("adjustment delta",
			fmt.Errorf("delta %d would drop onHand below reserved %d", delta, i.reserved))
	}

	movement, err := NewMovement(i.sku, i.warehouseID, Adjustment, delta, nil, nil,
		reason, performedBy)
	if err != nil {
		return err
	}

	i.onHand = newOnHand
	i.movements = append(i.movements, movement)
	return nil
}

// PendingMovements returns the ledger entries recorded on this aggregate
// since it was loaded. The repository persists them together with the
// counter update.
func (i *Item) PendingMovements() []Movement {
	return i.movements
}

func (i *Item) validateQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	return nil
}

func (i *Item) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	i.sku = sku
	return nil
}

func (i *Item) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.warehouseID = id
	return nil
}

func (i *Item) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	i.location = location
	return nil
}

func (i *Item) setPolicy(policy ReorderPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	i.policy = policy
	return nil
}
