// Package receiving contains the inbound replenishment domain model: the
// receiving task aggregate that reconciles an expected delivery against what
// actually arrived.
//
// A task lists the expected lines of a supplier delivery, collects the
// actually received units with their condition, and on reconciliation either
// completes cleanly or ends in Discrepancy with an itemized mismatch list.
// Good-condition units always replenish stock, discrepancies elsewhere in
// the same task never hold them back.
package receiving
