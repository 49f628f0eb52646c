package inventory

import (
	"errors"
	"fmt"
	"time"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/errs"
)

// ErrMovementIsNotConstructed is returned when a Movement instance was not
// created through NewPlannedMovement or RestoreMovement.
var ErrMovementIsNotConstructed = errors.New(
	"Movement must be created via NewPlannedMovement or RestoreMovement constructor")

// Movement is a planned or completed relocation of stock. It is always
// based on one stock row; candidate generation builds movements purely in
// memory, and the plan committer persists fresh copies bound to the
// reserved row of the allocation, never the original available row.
type Movement struct {
	id                 kernel.UUID
	stockRowID         kernel.UUID
	from               Endpoint
	to                 Endpoint
	kind               MovementKind
	status             MovementStatus
	moveAt             time.Time
	estimatedVolumeCc  float64
	assignedOperatorID *kernel.UUID

	isConstructed bool
}

// NewPlannedMovement creates a movement in Planned status with no operator
// assigned yet.
func NewPlannedMovement(
	id kernel.UUID,
	stockRowID kernel.UUID,
	from Endpoint,
	to Endpoint,
	kind MovementKind,
	moveAt time.Time,
	estimatedVolumeCc float64,
) (*Movement, error) {
	return RestoreMovement(id, stockRowID, from, to, kind, Planned, moveAt, estimatedVolumeCc, nil)
}

// RestoreMovement reconstructs a movement from persistence.
func RestoreMovement(
	id kernel.UUID,
	stockRowID kernel.UUID,
	from Endpoint,
	to Endpoint,
	kind MovementKind,
	status MovementStatus,
	moveAt time.Time,
	estimatedVolumeCc float64,
	assignedOperatorID *kernel.UUID,
) (*Movement, error) {
	m := &Movement{
		isConstructed: true,
	}

	if err := errors.Join(
		m.setID(id),
		m.setStockRowID(stockRowID),
		m.setEndpoints(from, to),
		m.setKind(kind),
		m.setStatus(status),
		m.setMoveAt(moveAt),
		m.setEstimatedVolumeCc(estimatedVolumeCc),
		m.setAssignedOperatorID(assignedOperatorID),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate ensures the movement was created via a constructor.
func (m *Movement) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMovementIsNotConstructed
	}
	return nil
}

// ID returns the unique identifier.
func (m *Movement) ID() kernel.UUID {
	return m.id
}

// StockRowID returns the stock row the movement is based on.
func (m *Movement) StockRowID() kernel.UUID {
	return m.stockRowID
}

// From returns the source endpoint.
func (m *Movement) From() Endpoint {
	return m.from
}

// To returns the destination endpoint.
func (m *Movement) To() Endpoint {
	return m.to
}

// Kind returns the movement kind.
func (m *Movement) Kind() MovementKind {
	return m.kind
}

// Status returns the lifecycle status.
func (m *Movement) Status() MovementStatus {
	return m.status
}

// MoveAt returns the scheduled (or actual) execution time.
func (m *Movement) MoveAt() time.Time {
	return m.moveAt
}

// EstimatedVolumeCc returns the projected cargo volume in cubic centimetres.
func (m *Movement) EstimatedVolumeCc() float64 {
	return m.estimatedVolumeCc
}

// AssignedOperatorID returns the operator in charge, or nil when unassigned.
func (m *Movement) AssignedOperatorID() *kernel.UUID {
	return m.assignedOperatorID
}

func (m *Movement) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Movement) setStockRowID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.stockRowID = id
	return nil
}

func (m *Movement) setEndpoints(from, to Endpoint) error {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return err
	}
	if from.IsClient() && to.IsClient() {
		return errs.NewValueIsInvalidErrorWithCause("endpoints are invalid",
			errors.New("a movement cannot run from client to client"))
	}
	m.from = from
	m.to = to
	return nil
}

func (m *Movement) setKind(kind MovementKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	m.kind = kind
	return nil
}

func (m *Movement) setStatus(status MovementStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	m.status = status
	return nil
}

func (m *Movement) setMoveAt(moveAt time.Time) error {
	if moveAt.IsZero() {
		return errs.NewValueIsRequiredError("moveAt")
	}
	m.moveAt = moveAt
	return nil
}

func (m *Movement) setEstimatedVolumeCc(v float64) error {
	if v < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedVolumeCc is invalid",
			fmt.Errorf("%f is negative", v))
	}
	m.estimatedVolumeCc = v
	return nil
}

func (m *Movement) setAssignedOperatorID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	m.assignedOperatorID = id
	return nil
}
