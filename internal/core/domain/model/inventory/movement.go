package inventory

import (
	"fmt"
	"sort"
	"time"

	"warehousing/internal/core/domain/model/kernel"
	"warehousing/internal/pkg/errs"
)

// MovementKind classifies a stock movement by its effect on the counters.
//
// Effects during replay:
//
//	Inbound            onHand += delta
//	Outbound           onHand += delta, reserved += delta (delta is negative)
//	Reservation        reserved += delta
//	ReservationRelease reserved += delta (delta is negative)
//	Adjustment         onHand += delta
type MovementKind int

const (
	// UnknownKind represents an invalid or undefined movement kind.
	UnknownKind MovementKind = iota

	// Inbound records stock physically received into the warehouse.
	Inbound

	// Outbound records reserved stock permanently consumed by a pick.
	Outbound

	// Reservation records a soft hold placed against pending order lines.
	Reservation

	// ReservationRelease records a hold returned to the available pool.
	ReservationRelease

	// Adjustment records a manual correction to the on-hand counter.
	Adjustment
)

func getKindStrings() map[MovementKind]string {
	return map[MovementKind]string{
		UnknownKind:        "Unknown",
		Inbound:            "Inbound",
		Outbound:           "Outbound",
		Reservation:        "Reservation",
		ReservationRelease: "ReservationRelease",
		Adjustment:         "Adjustment",
	}
}

// String returns the human-readable name of the movement kind.
func (k MovementKind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the kind is one of the defined movement kinds.
func (k MovementKind) Validate() error {
	if k <= UnknownKind || k > Adjustment {
		return errs.NewValueIsInvalidErrorWithCause("movement kind",
			fmt.Errorf("%d is not a valid movement kind", k))
	}
	return nil
}

// Movement is one immutable entry of the stock ledger. Entries are never
// edited or deleted; corrections are expressed as new offsetting entries.
type Movement struct {
	id             kernel.UUID
	sku            string
	warehouseID    kernel.UUID
	kind           MovementKind
	quantityDelta  int
	relatedOrderID *kernel.UUID
	relatedTaskID  *kernel.UUID
	reason         string
	performedBy    string
	occurredAt     time.Time
}

// NewMovement creates a ledger entry. The delta sign must match the kind:
// Inbound and Reservation are positive, Outbound and ReservationRelease are
// negative, Adjustment may carry either sign but never zero.
func NewMovement(
	sku string,
	warehouseID kernel.UUID,
	kind MovementKind,
	quantityDelta int,
	relatedOrderID *kernel.UUID,
	relatedTaskID *kernel.UUID,
	reason string,
	performedBy string,
) (Movement, error) {
	if sku == "" {
		return Movement{}, errs.NewValueIsRequiredError("sku")
	}
	if err := warehouseID.Validate(); err != nil {
		return Movement{}, err
	}
	if err := kind.Validate(); err != nil {
		return Movement{}, err
	}
	if err := validateDelta(kind, quantityDelta); err != nil {
		return Movement{}, err
	}
	if performedBy == "" {
		return Movement{}, errs.NewValueIsRequiredError("performedBy")
	}

	return Movement{
		id:             kernel.NewUUID(),
		sku:            sku,
		warehouseID:    warehouseID,
		kind:           kind,
		quantityDelta:  quantityDelta,
		relatedOrderID: relatedOrderID,
		relatedTaskID:  relatedTaskID,
		reason:         reason,
		performedBy:    performedBy,
		occurredAt:     time.Now().UTC(),
	}, nil
}

// RestoreMovement reconstructs a ledger entry from persistence.
func RestoreMovement(
	id kernel.UUID,
	sku string,
	warehouseID kernel.UUID,
	kind MovementKind,
	quantityDelta int,
	relatedOrderID *kernel.UUID,
	relatedTaskID *kernel.UUID,
	reason string,
	performedBy string,
	occurredAt time.Time,
) (Movement, error) {
	if err := id.Validate(); err != nil {
		return Movement{}, err
	}
	if sku == "" {
		return Movement{}, errs.NewValueIsRequiredError("sku")
	}
	if err := kind.Validate(); err != nil {
		return Movement{}, err
	}

	return Movement{
		id:             id,
		sku:            sku,
		warehouseID:    warehouseID,
		kind:           kind,
		quantityDelta:  quantityDelta,
		relatedOrderID: relatedOrderID,
		relatedTaskID:  relatedTaskID,
		reason:         reason,
		performedBy:    performedBy,
		occurredAt:     occurredAt,
	}, nil
}

func validateDelta(kind MovementKind, delta int) error {
	switch kind {
	case Inbound, Reservation:
		if delta <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantityDelta",
				fmt.Errorf("%s movement requires a positive delta, got %d", kind, delta))
		}
	case Outbound, ReservationRelease:
		if delta >= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantityDelta",
				fmt.Errorf("%s movement requires a negative delta, got %d", kind, delta))
		}
	case Adjustment:
		if delta == 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantityDelta",
				fmt.Errorf("%s movement requires a non-zero delta", kind))
		}
	case UnknownKind:
		return errs.NewValueIsInvalidError("movement kind")
	}
	return nil
}

// ID returns the unique identifier of the ledger entry.
func (m Movement) ID() kernel.UUID {
	return m.id
}

// SKU returns the stock-keeping unit the entry applies to.
func (m Movement) SKU() string {
	return m.sku
}

// WarehouseID returns the warehouse the entry applies to.
func (m Movement) WarehouseID() kernel.UUID {
	return m.warehouseID
}

// Kind returns the movement classification.
func (m Movement) Kind() MovementKind {
	return m.kind
}

// QuantityDelta returns the signed quantity change.
func (m Movement) QuantityDelta() int {
	return m.quantityDelta
}

// RelatedOrderID returns the order the entry was written for, if any.
func (m Movement) RelatedOrderID() *kernel.UUID {
	return m.relatedOrderID
}

// RelatedTaskID returns the picking or receiving task the entry was written
// for, if any.
func (m Movement) RelatedTaskID() *kernel.UUID {
	return m.relatedTaskID
}

// Reason returns the free-form explanation attached to the entry.
func (m Movement) Reason() string {
	return m.reason
}

// PerformedBy returns the actor that caused the entry.
func (m Movement) PerformedBy() string {
	return m.performedBy
}

// OccurredAt returns the entry timestamp.
func (m Movement) OccurredAt() time.Time {
	return m.occurredAt
}

// IdempotencyKey derives the deduplication key for retried appends.
// Two appends for the same related entity, kind and SKU are the same
// business event and must be applied at most once.
func (m Movement) IdempotencyKey() string {
	related := m.id.String()
	if m.relatedTaskID != nil {
		related = m.relatedTaskID.String()
	} else if m.relatedOrderID != nil {
		related = m.relatedOrderID.String()
	}
	return fmt.Sprintf("%s:%s:%s", related, m.kind, m.sku)
}

// Replay folds ledger entries in timestamp order into the counter pair they
// produce. It is the reference semantics for the live projection: the
// projection is correct exactly when Replay over the SKU's full ledger
// reproduces its stored counters.
func Replay(movements []Movement) (onHand, reserved int) {
	ordered := make([]Movement, len(movements))
	copy(ordered, movements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].occurredAt.Before(ordered[j].occurredAt)
	})

	for _, m := range ordered {
		switch m.kind {
		case Inbound, Adjustment:
			onHand += m.quantityDelta
		case Outbound:
			onHand += m.quantityDelta
			reserved += m.quantityDelta
		case Reservation, ReservationRelease:
			reserved += m.quantityDelta
		case UnknownKind:
		}
	}
	return onHand, reserved
}
