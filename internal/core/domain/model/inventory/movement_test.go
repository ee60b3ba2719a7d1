package inventory_test

import (
	"testing"
	"time"

	"warehousing/internal/core/domain/model/inventory"
	"warehousing/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementKind_String(t *testing.T) {
	assert.Equal(t, "Inbound", inventory.Inbound.String())
	assert.Equal(t, "Outbound", inventory.Outbound.String())
	assert.Equal(t, "Reservation", inventory.Reservation.String())
	assert.Equal(t, "ReservationRelease", inventory.ReservationRelease.String())
	assert.Equal(t, "Adjustment", inventory.Adjustment.String())
	assert.Equal(t, "Unknown", inventory.UnknownKind.String())
	assert.Equal(t, "Unknown", inventory.MovementKind(99).String())
}

func TestMovementKind_Validate(t *testing.T) {
	for _, kind := range []inventory.MovementKind{
		inventory.Inbound, inventory.Outbound, inventory.Reservation,
		inventory.ReservationRelease, inventory.Adjustment,
	} {
		require.NoError(t, kind.Validate())
	}

	require.Error(t, inventory.UnknownKind.Validate())
	require.Error(t, inventory.MovementKind(99).Validate())
}

func TestNewMovement_DeltaSign(t *testing.T) {
	warehouseID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	tests := []struct {
		name    string
		kind    inventory.MovementKind
		delta   int
		wantErr bool
	}{
		{name: "inbound positive", kind: inventory.Inbound, delta: 5},
		{name: "inbound negative rejected", kind: inventory.Inbound, delta: -5, wantErr: true},
		{name: "reservation positive", kind: inventory.Reservation, delta: 3},
		{name: "reservation zero rejected", kind: inventory.Reservation, delta: 0, wantErr: true},
		{name: "outbound negative", kind: inventory.Outbound, delta: -3},
		{name: "outbound positive rejected", kind: inventory.Outbound, delta: 3, wantErr: true},
		{name: "release negative", kind: inventory.ReservationRelease, delta: -1},
		{name: "release positive rejected", kind: inventory.ReservationRelease, delta: 1, wantErr: true},
		{name: "adjustment either sign", kind: inventory.Adjustment, delta: -2},
		{name: "adjustment zero rejected", kind: inventory.Adjustment, delta: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := inventory.NewMovement("SKU-1", warehouseID, tt.kind, tt.delta,
				&orderID, nil, "test", "tester")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMovement_IdempotencyKey(t *testing.T) {
	warehouseID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	taskID := kernel.NewUUID()

	t.Run("task scoped entries key on the task", func(t *testing.T) {
		m, err := inventory.NewMovement("SKU-1", warehouseID, inventory.Outbound, -2,
			&orderID, &taskID, "pick", "worker")
		require.NoError(t, err)

		assert.Equal(t, taskID.String()+":Outbound:SKU-1", m.IdempotencyKey())
	})

	t.Run("order scoped entries key on the order", func(t *testing.T) {
		m, err := inventory.NewMovement("SKU-1", warehouseID, inventory.Reservation, 2,
			&orderID, nil, "reservation", "order-service")
		require.NoError(t, err)

		assert.Equal(t, orderID.String()+":Reservation:SKU-1", m.IdempotencyKey())
	})

	t.Run("unrelated entries key on their own id", func(t *testing.T) {
		m, err := inventory.NewMovement("SKU-1", warehouseID, inventory.Adjustment, -1,
			nil, nil, "cycle count", "auditor")
		require.NoError(t, err)

		assert.Equal(t, m.ID().String()+":Adjustment:SKU-1", m.IdempotencyKey())
	})
}

func TestReplay(t *testing.T) {
	warehouseID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	taskID := kernel.NewUUID()

	restore := func(kind inventory.MovementKind, delta int, at time.Time) inventory.Movement {
		m, err := inventory.RestoreMovement(kernel.NewUUID(), "SKU-1", warehouseID,
			kind, delta, &orderID, &taskID, "test", "tester", at)
		require.NoError(t, err)
		return m
	}

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("empty ledger replays to zero", func(t *testing.T) {
		onHand, reserved := inventory.Replay(nil)
		assert.Equal(t, 0, onHand)
		assert.Equal(t, 0, reserved)
	})

	t.Run("full pick cycle", func(t *testing.T) {
		// receive 10, reserve 4, pick 3, release the short remainder of 1
		ledger := []inventory.Movement{
			restore(inventory.Inbound, 10, base),
			restore(inventory.Reservation, 4, base.Add(1*time.Minute)),
			restore(inventory.Outbound, -3, base.Add(2*time.Minute)),
			restore(inventory.ReservationRelease, -1, base.Add(3*time.Minute)),
		}

		onHand, reserved := inventory.Replay(ledger)
		assert.Equal(t, 7, onHand)
		assert.Equal(t, 0, reserved)
	})

	t.Run("adjustments apply to onHand only", func(t *testing.T) {
		ledger := []inventory.Movement{
			restore(inventory.Inbound, 10, base),
			restore(inventory.Reservation, 2, base.Add(1*time.Minute)),
			restore(inventory.Adjustment, -3, base.Add(2*time.Minute)),
		}

		onHand, reserved := inventory.Replay(ledger)
		assert.Equal(t, 7, onHand)
		assert.Equal(t, 2, reserved)
	})

	t.Run("out of order input is replayed by timestamp", func(t *testing.T) {
		ledger := []inventory.Movement{
			restore(inventory.Outbound, -3, base.Add(2*time.Minute)),
			restore(inventory.Inbound, 10, base),
			restore(inventory.Reservation, 4, base.Add(1*time.Minute)),
		}

		onHand, reserved := inventory.Replay(ledger)
		assert.Equal(t, 7, onHand)
		assert.Equal(t, 1, reserved)
	})
}
