package queries

import (
	"errors"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/guard"
)

var ErrGetOrderItemCandidatesQueryIsNotConstructed = errors.New(
	"GetOrderItemCandidatesQuery must be created via NewGetOrderItemCandidatesQuery constructor",
)

// GetOrderItemCandidatesQuery requests the scored fulfillment paths for one
// order item. Used for inspecting how an item would be sourced before an
// allocation run commits anything.
type GetOrderItemCandidatesQuery struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderItemCandidatesQuery creates a query for the given order item.
func NewGetOrderItemCandidatesQuery(orderItemID kernel.UUID) (GetOrderItemCandidatesQuery, error) {
	query := GetOrderItemCandidatesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderItemID(orderItemID); err != nil {
		return GetOrderItemCandidatesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderItemCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderItemCandidatesQueryIsNotConstructed)
}

// OrderItemID returns the item whose candidates are requested.
func (q GetOrderItemCandidatesQuery) OrderItemID() kernel.UUID {
	return q.orderItemID
}

func (q *GetOrderItemCandidatesQuery) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}

	q.orderItemID = orderItemID
	return nil
}
