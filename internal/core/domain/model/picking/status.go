package picking

import (
	"fmt"

	"warehousing/internal/pkg/errs"
)

// Status represents the lifecycle state of a picking task.
//
// State transitions:
//
//	Pending ──> Assigned ──> InProgress ──> Completed
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled
//
// Completed and Cancelled are final states.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Pending is the initial status of a freshly created task.
	Pending

	// Assigned indicates the task has been claimed by a warehouse worker.
	Assigned

	// InProgress indicates the worker has started picking.
	InProgress

	// Completed indicates every line reached a terminal status.
	Completed

	// Cancelled indicates the task was abandoned before completion.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Pending:       "Pending",
		Assigned:      "Assigned",
		InProgress:    "InProgress",
		Completed:     "Completed",
		Cancelled:     "Cancelled",
	}
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid picking task status", s))
	}
	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// StatusFromString parses a status from its human-readable name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != UnknownStatus {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid picking task status", s))
}

// LineStatus represents the state of a single picking line.
// Pending lines are still being worked; Picked, Short and Damaged are
// terminal line outcomes.
type LineStatus int

const (
	// UnknownLineStatus represents an invalid or undefined line status.
	UnknownLineStatus LineStatus = iota

	// LinePending indicates the line has not been picked yet.
	LinePending

	// LinePicked indicates the full requested quantity was picked.
	LinePicked

	// LineShort indicates fewer units than requested could be picked.
	LineShort

	// LineDamaged indicates the stock at the slot was found damaged and
	// nothing usable was picked.
	LineDamaged
)

func getLineStatusStrings() map[LineStatus]string {
	return map[LineStatus]string{
		UnknownLineStatus: "Unknown",
		LinePending:       "Pending",
		LinePicked:        "Picked",
		LineShort:         "Short",
		LineDamaged:       "Damaged",
	}
}

// String returns the human-readable name of the line status.
func (s LineStatus) String() string {
	if str, ok := getLineStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the LineStatus value is one of the defined states.
func (s LineStatus) Validate() error {
	if s < LinePending || s > LineDamaged {
		return errs.NewValueIsInvalidErrorWithCause("line status is invalid",
			fmt.Errorf("%d is not a valid picking line status", s))
	}
	return nil
}

// IsTerminal reports whether the line status is a final pick outcome.
func (s LineStatus) IsTerminal() bool {
	return s == LinePicked || s == LineShort || s == LineDamaged
}

// LineStatusFromString parses a line status from its human-readable name.
func LineStatusFromString(s string) (LineStatus, error) {
	for status, str := range getLineStatusStrings() {
		if str == s && status != UnknownLineStatus {
			return status, nil
		}
	}
	return UnknownLineStatus, errs.NewValueIsInvalidErrorWithCause("line status",
		fmt.Errorf("%q is not a valid picking line status", s))
}
