package kernel

import (
	"errors"
	"fmt"

	"warehousing/internal/pkg/errs"
	"warehousing/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly
// initialized Location. Locations must be created via NewLocation to ensure validity.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location addresses a physical storage slot inside a warehouse.
// It is an immutable value object made of an aisle, rack, shelf and bin
// component, each a non-empty short label assigned by the slotting system.
// The zero value is invalid and fails validation - use NewLocation.
//
// Example:
//
//	loc, err := kernel.NewLocation("A3", "R12", "S2", "B07")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc) // Output: A3-R12-S2-B07
type Location struct { //nolint:recvcheck //using for validation
	aisle string
	rack  string
	shelf string
	bin   string

	guard guard.ConstructorGuard
}

// NewLocation creates a validated storage slot address.
// Every component must be non-empty; slot labels come from the external
// slotting system and are treated as opaque beyond that.
func NewLocation(aisle, rack, shelf, bin string) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		loc.setComponent(&loc.aisle, "aisle", aisle),
		loc.setComponent(&loc.rack, "rack", rack),
		loc.setComponent(&loc.shelf, "shelf", shelf),
		loc.setComponent(&loc.bin, "bin", bin),
	); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Aisle returns the aisle label of the slot.
func (l Location) Aisle() string {
	return l.aisle
}

// Rack returns the rack label of the slot.
func (l Location) Rack() string {
	return l.rack
}

// Shelf returns the shelf label of the slot.
func (l Location) Shelf() string {
	return l.shelf
}

// Bin returns the bin label of the slot.
func (l Location) Bin() string {
	return l.bin
}

// IsEqual compares two locations component-wise.
func (l Location) IsEqual(other Location) bool {
	return l.aisle == other.aisle &&
		l.rack == other.rack &&
		l.shelf == other.shelf &&
		l.bin == other.bin
}

// String renders the slot address as "aisle-rack-shelf-bin".
// This is the format warehouse workers see on pick lists.
func (l Location) String() string {
	return fmt.Sprintf("%s-%s-%s-%s", l.aisle, l.rack, l.shelf, l.bin)
}

// Validate checks that the Location was created via NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l *Location) setComponent(target *string, name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*target = value
	return nil
}
