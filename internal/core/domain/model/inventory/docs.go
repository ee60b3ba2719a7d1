// Package inventory contains the stock-keeping domain model: the per-SKU
// inventory item aggregate with its on-hand and reserved counters, and the
// stock movement value object that records every quantity-changing event.
//
// The aggregate is the single place where the stock invariant is enforced:
// for every item, 0 <= reserved <= onHand holds at all times. Available
// quantity is always derived as onHand minus reserved and is never stored.
//
// Every mutation of the counters records a corresponding stock movement on
// the aggregate. Repositories persist the counters and the recorded movements
// in the same transaction, so the movement ledger can always be replayed to
// reproduce the live counters.
package inventory
