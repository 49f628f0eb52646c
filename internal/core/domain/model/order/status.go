package order

import (
	"fmt"

	"speedit/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Created ──> Allocated ──> Completed
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first registered.
	// Orders in this status are waiting for stock allocation.
	Created

	// Allocated indicates stock has been reserved for every item of the
	// order and movements have been planned.
	Allocated

	// Completed indicates the order has been delivered.
	// This is a final state with no further transitions allowed.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Allocated: "Allocated",
		Completed: "Completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "Created",
		Allocated: "Allocated",
		Completed: "Completed",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Created, Allocated, Completed.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface and is safe to call
// on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Allocate transitions the status to Allocated.
//
// Valid transitions:
//   - Created -> Allocated (stock reserved for every item)
//
// Returns:
//   - (Allocated, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
//
// Orders are only ever allocated as a whole: a partial reservation is
// rolled back, so Allocated -> Allocated never happens.
func (s Status) Allocate() (Status, error) {
	if s != Created {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to allocate", s.String()),
		)
	}

	return Allocated, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Allocated -> Completed (order delivered)
//
// Returns:
//   - (Completed, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
//
// Completed is a final state with no further transitions possible.
func (s Status) Complete() (Status, error) {
	if s != Allocated {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}
