package queries

import (
	"context"

	"speedit/internal/core/domain/model/allocation"
	"speedit/internal/core/domain/services"
	"speedit/internal/core/ports"
)

// GetOrderItemCandidatesQueryHandler runs candidate generation for one order
// item. Unlike the other read models this one goes through the domain
// services rather than raw SQL, because scoring needs routing calls and van
// state that live outside the database. The transaction is opened only for
// consistent reads and is always rolled back.
type GetOrderItemCandidatesQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	routing    ports.RoutingProvider
	fillReader ports.FillLevelReader
}

// NewGetOrderItemCandidatesQueryHandler creates a handler for candidate
// inspection queries.
func NewGetOrderItemCandidatesQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	routing ports.RoutingProvider,
	fillReader ports.FillLevelReader,
) GetOrderItemCandidatesQueryHandler {
	return GetOrderItemCandidatesQueryHandler{
		uowFactory: uowFactory,
		routing:    routing,
		fillReader: fillReader,
	}
}

// Handle generates and scores the fulfillment paths for the order item.
// A result with no candidates means no eligible stock exists.
func (h GetOrderItemCandidatesQueryHandler) Handle(
	ctx context.Context,
	query GetOrderItemCandidatesQuery,
) (allocation.CandidateGenerationResult, error) {
	if err := query.Validate(); err != nil {
		return allocation.CandidateGenerationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return allocation.CandidateGenerationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	item, err := orderRepo.GetItem(ctx, query.OrderItemID())
	if err != nil {
		return allocation.CandidateGenerationResult{}, err
	}

	ord, err := orderRepo.Get(ctx, item.OrderID())
	if err != nil {
		return allocation.CandidateGenerationResult{}, err
	}

	resolver, err := services.NewRouteOverheadResolver(
		h.routing, uow.MovementRepository(), uow.StockRepository(), uow.InventoryRepository())
	if err != nil {
		return allocation.CandidateGenerationResult{}, err
	}

	generator, err := services.NewCandidateGenerator(
		resolver, h.fillReader, uow.StockRepository(), uow.InventoryRepository(), uow.ProductRepository())
	if err != nil {
		return allocation.CandidateGenerationResult{}, err
	}

	return generator.Generate(ctx, ord, item)
}
