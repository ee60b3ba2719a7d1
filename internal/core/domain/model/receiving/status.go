package receiving

import (
	"fmt"

	"warehousing/internal/pkg/errs"
)

// Status represents the lifecycle state of a receiving task.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//	                 │
//	                 └──> Discrepancy
//
// Completed and Discrepancy are final states; Discrepancy means the
// delivery was reconciled with mismatches, not that it failed.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Pending is the initial status of a created receiving task.
	Pending

	// InProgress indicates receiving staff are recording arrived units.
	InProgress

	// Completed indicates reconciliation found no mismatches.
	Completed

	// Discrepancy indicates reconciliation found mismatches between the
	// expected and the actually received units.
	Discrepancy
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Pending:       "Pending",
		InProgress:    "InProgress",
		Completed:     "Completed",
		Discrepancy:   "Discrepancy",
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
	if s < Pending || s > Discrepancy {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid receiving task status", s))
	}
	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Discrepancy
}

// StatusFromString parses a status from its human-readable name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != UnknownStatus {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid receiving task status", s))
}

// Condition classifies the physical state of received units.
type Condition int

const (
	// UnknownCondition represents an invalid or undefined condition.
	UnknownCondition Condition = iota

	// Good units are sellable and replenish on-hand stock.
	Good

	// Damaged units arrived physically damaged.
	Damaged

	// Expired units arrived past their expiry date.
	Expired
)

func getConditionStrings() map[Condition]string {
	return map[Condition]string{
		UnknownCondition: "Unknown",
		Good:             "Good",
		Damaged:          "Damaged",
		Expired:          "Expired",
	}
}

// String returns the human-readable name of the condition.
func (c Condition) String() string {
	if str, ok := getConditionStrings()[c]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Condition value is one of the defined conditions.
func (c Condition) Validate() error {
	if c < Good || c > Expired {
		return errs.NewValueIsInvalidErrorWithCause("condition is invalid",
			fmt.Errorf("%d is not a valid condition", c))
	}
	return nil
}

// ConditionFromString parses a condition from its human-readable name.
func ConditionFromString(s string) (Condition, error) {
	for condition, str := range getConditionStrings() {
		if str == s && condition != UnknownCondition {
			return condition, nil
		}
	}
	return UnknownCondition, errs.NewValueIsInvalidErrorWithCause("condition",
		fmt.Errorf("%q is not a valid condition", s))
}
