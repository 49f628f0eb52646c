package inventory

import (
	"fmt"

	"speedit/internal/pkg/errs"
)

// MovementStatus is the lifecycle state of a movement.
//
//	Planned ──> InProgress ──> Done
//	    │            │
//	    └────────────┴──> Cancelled
type MovementStatus int

const (
	// MovementStatusUnknown catches uninitialized values.
	MovementStatusUnknown MovementStatus = iota

	// Planned means the movement is scheduled but not yet started.
	// The plan committer only ever persists movements in this state.
	Planned

	// InProgress means an operator is executing the movement.
	InProgress

	// Done means the movement completed; its destination is the van's last
	// known position for route resolution.
	Done

	// Cancelled means the movement was abandoned.
	Cancelled
)

func movementStatusStrings() map[MovementStatus]string {
	return map[MovementStatus]string{
		MovementStatusUnknown: "Unknown",
		Planned:               "Planned",
		InProgress:            "InProgress",
		Done:                  "Done",
		Cancelled:             "Cancelled",
	}
}

// Validate rejects MovementStatusUnknown and out-of-range values.
func (s MovementStatus) Validate() error {
	if s != Planned && s != InProgress && s != Done && s != Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("movement status is invalid",
			fmt.Errorf("%d is not a valid movement status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s MovementStatus) String() string {
	if str, ok := movementStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
