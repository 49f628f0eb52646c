package inventory

import (
	"fmt"

	"speedit/internal/pkg/errs"
)

// MovementKind classifies a stock relocation.
type MovementKind int

const (
	// MovementKindUnknown catches uninitialized values.
	MovementKindUnknown MovementKind = iota

	// Load moves stock from a warehouse or store onto a van.
	Load

	// Unload moves stock off a van, typically to the client.
	Unload

	// Transfer moves stock between two stationary inventories.
	Transfer
)

func movementKindStrings() map[MovementKind]string {
	return map[MovementKind]string{
		MovementKindUnknown: "Unknown",
		Load:                "Load",
		Unload:              "Unload",
		Transfer:            "Transfer",
	}
}

// Validate rejects MovementKindUnknown and out-of-range values.
func (k MovementKind) Validate() error {
	if k != Load && k != Unload && k != Transfer {
		return errs.NewValueIsInvalidErrorWithCause("movement kind is invalid",
			fmt.Errorf("%d is not a valid movement kind", k))
	}
	return nil
}

// String implements fmt.Stringer.
func (k MovementKind) String() string {
	if s, ok := movementKindStrings()[k]; ok {
		return s
	}
	return "Unknown"
}
