// Package picking contains the picking workflow domain model: the picking
// task aggregate that turns a stock reservation into physical warehouse work.
//
// A task is created right after an order's lines are reserved and walks the
// lifecycle Pending -> Assigned -> InProgress -> Completed, with Cancelled
// reachable from any non-terminal state. Each task line tracks how many
// units were actually picked and ends in a terminal line status. Picked
// quantities deplete stock as picking proceeds; remainders of short lines
// return to the available pool when the task completes.
package picking
