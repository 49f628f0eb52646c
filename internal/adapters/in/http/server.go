// Package http exposes the allocation engine over a REST API.
package http

import (
	"errors"
	"net/http"
	"time"

	"speedit/internal/core/application/usecases/commands"
	"speedit/internal/core/application/usecases/queries"
	"speedit/internal/core/domain/model/allocation"
	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	planAllocationHandler  commands.PlanAllocationCommandHandler
	planAndAllocateHandler commands.PlanAndAllocateCommandHandler

	// Query handlers
	getPendingOrdersHandler       queries.GetPendingOrdersQueryHandler
	getOrderItemCandidatesHandler queries.GetOrderItemCandidatesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	planAllocationHandler commands.PlanAllocationCommandHandler,
	planAndAllocateHandler commands.PlanAndAllocateCommandHandler,
	getPendingOrdersHandler queries.GetPendingOrdersQueryHandler,
	getOrderItemCandidatesHandler queries.GetOrderItemCandidatesQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		planAllocationHandler:         planAllocationHandler,
		planAndAllocateHandler:        planAndAllocateHandler,
		getPendingOrdersHandler:       getPendingOrdersHandler,
		getOrderItemCandidatesHandler: getOrderItemCandidatesHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/pending", s.GetPendingOrders)
	api.GET("/order-items/:id/candidates", s.GetOrderItemCandidates)
	api.POST("/allocation/plan", s.PlanAllocation)
	api.POST("/allocation/run", s.RunAllocation)
}

// ErrorResponse is the uniform error payload for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LocationPayload carries a geographic point in request and response bodies.
type LocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewOrderItem is one requested product line of a new order.
type NewOrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// NewOrder is the request body for order registration.
type NewOrder struct {
	Location LocationPayload `json:"location"`
	Items    []NewOrderItem  `json:"items"`
}

// OrderCreated is the response body for a registered order.
type OrderCreated struct {
	ID string `json:"id"`
}

// CreateOrder handles POST /api/v1/orders - registers a new order for allocation.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	location, err := kernel.NewGeoPoint(newOrder.Location.Latitude, newOrder.Location.Longitude)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order location: " + err.Error(),
		})
	}

	items := make([]commands.OrderItemSpec, 0, len(newOrder.Items))
	for _, item := range newOrder.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid product id: " + item.ProductID,
			})
		}
		items = append(items, commands.OrderItemSpec{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, location, items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: orderID.String()})
}

// PendingOrder is one order still waiting for allocation.
type PendingOrder struct {
	ID       string          `json:"id"`
	Location LocationPayload `json:"location"`
}

// GetPendingOrders handles GET /api/v1/orders/pending - lists orders
// still waiting for stock allocation.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	query := queries.NewGetPendingOrdersQuery()

	orders, err := s.getPendingOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve pending orders",
		})
	}

	response := make([]PendingOrder, len(orders))
	for i, o := range orders {
		response[i] = PendingOrder{
			ID: o.ID.String(),
			Location: LocationPayload{
				Latitude:  o.Location.Latitude(),
				Longitude: o.Location.Longitude(),
			},
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CandidateMetricsPayload carries the raw cost components of a candidate.
type CandidateMetricsPayload struct {
	DistanceKm      float64 `json:"distance_km"`
	TravelTimeSec   float64 `json:"travel_time_sec"`
	HandlingTimeSec float64 `json:"handling_time_sec"`
	Pressure        float64 `json:"pressure"`
}

// Candidate is one scored fulfillment path for an order item.
type Candidate struct {
	StockRowID        string                  `json:"stock_row_id"`
	SourceInventoryID string                  `json:"source_inventory_id"`
	VanID             string                  `json:"van_id"`
	Pattern           string                  `json:"pattern"`
	FeasibleAmount    int                     `json:"feasible_amount"`
	Score             float64                 `json:"score"`
	Metrics           CandidateMetricsPayload `json:"metrics"`
}

// CandidateList is the response body for candidate inspection.
type CandidateList struct {
	OrderID           string      `json:"order_id"`
	OrderItemID       string      `json:"order_item_id"`
	ProductID         string      `json:"product_id"`
	RequestedQuantity int         `json:"requested_quantity"`
	Candidates        []Candidate `json:"candidates"`
}

// GetOrderItemCandidates handles GET /api/v1/order-items/:id/candidates -
// generates and scores the fulfillment paths for one order item.
func (s *Server) GetOrderItemCandidates(ctx echo.Context) error {
	orderItemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order item id",
		})
	}

	query, err := queries.NewGetOrderItemCandidatesQuery(orderItemID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	result, err := s.getOrderItemCandidatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order item not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to generate candidates",
		})
	}

	candidates := make([]Candidate, len(result.Candidates))
	for i, c := range result.Candidates {
		candidates[i] = Candidate{
			StockRowID:        c.StockRowID.String(),
			SourceInventoryID: c.SourceInventoryID.String(),
			VanID:             c.VanID.String(),
			Pattern:           string(c.Pattern),
			FeasibleAmount:    c.FeasibleAmount,
			Score:             c.Score,
			Metrics: CandidateMetricsPayload{
				DistanceKm:      c.Metrics.DistanceKm,
				TravelTimeSec:   c.Metrics.TravelTimeSec,
				HandlingTimeSec: c.Metrics.HandlingTimeSec,
				Pressure:        c.Metrics.Pressure,
			},
		}
	}

	return ctx.JSON(http.StatusOK, CandidateList{
		OrderID:           result.OrderID.String(),
		OrderItemID:       result.OrderItemID.String(),
		ProductID:         result.ProductID.String(),
		RequestedQuantity: result.RequestedQuantity,
		Candidates:        candidates,
	})
}

// AllocationRequest optionally narrows a planning run to specific orders.
// An empty list means the whole pending backlog.
type AllocationRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// PlannedMovement is one stock movement a plan would schedule.
type PlannedMovement struct {
	Kind   string    `json:"kind"`
	MoveAt time.Time `json:"move_at"`
}

// AllocationChunkPayload is a quantity bound to one fulfillment path.
type AllocationChunkPayload struct {
	StockRowID string            `json:"stock_row_id"`
	VanID      string            `json:"van_id"`
	Pattern    string            `json:"pattern"`
	Quantity   int               `json:"quantity"`
	Score      float64           `json:"score"`
	Movements  []PlannedMovement `json:"movements"`
}

// ItemPlanPayload is the allocation outcome for one order item.
type ItemPlanPayload struct {
	OrderID           string                   `json:"order_id"`
	OrderItemID       string                   `json:"order_item_id"`
	ProductID         string                   `json:"product_id"`
	RequestedQuantity int                      `json:"requested_quantity"`
	AllocatedQuantity int                      `json:"allocated_quantity"`
	Chunks            []AllocationChunkPayload `json:"chunks"`
}

// AllocationPlanPayload is the response body of both planning endpoints.
type AllocationPlanPayload struct {
	FullyAllocated bool              `json:"fully_allocated"`
	ItemPlans      []ItemPlanPayload `json:"item_plans"`
}

func parseAllocationRequest(ctx echo.Context) ([]kernel.UUID, *ErrorResponse) {
	var request AllocationRequest
	if err := ctx.Bind(&request); err != nil {
		return nil, &ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		}
	}

	orderIDs := make([]kernel.UUID, 0, len(request.OrderIDs))
	for _, raw := range request.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, &ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid order id: " + raw,
			}
		}
		orderIDs = append(orderIDs, id)
	}

	return orderIDs, nil
}

func planToPayload(plan allocation.GlobalAllocationPlan) AllocationPlanPayload {
	itemPlans := make([]ItemPlanPayload, len(plan.ItemPlans))
	for i, itemPlan := range plan.ItemPlans {
		chunks := make([]AllocationChunkPayload, len(itemPlan.Chunks))
		for j, chunk := range itemPlan.Chunks {
			movements := make([]PlannedMovement, len(chunk.Candidate.Movements))
			for k, movement := range chunk.Candidate.Movements {
				movements[k] = PlannedMovement{
					Kind:   movement.Kind().String(),
					MoveAt: movement.MoveAt(),
				}
			}
			chunks[j] = AllocationChunkPayload{
				StockRowID: chunk.Candidate.StockRowID.String(),
				VanID:      chunk.Candidate.VanID.String(),
				Pattern:    string(chunk.Candidate.Pattern),
				Quantity:   chunk.Quantity,
				Score:      chunk.Candidate.Score,
				Movements:  movements,
			}
		}
		itemPlans[i] = ItemPlanPayload{
			OrderID:           itemPlan.OrderID.String(),
			OrderItemID:       itemPlan.OrderItemID.String(),
			ProductID:         itemPlan.ProductID.String(),
			RequestedQuantity: itemPlan.RequestedQuantity,
			AllocatedQuantity: itemPlan.AllocatedQuantity(),
			Chunks:            chunks,
		}
	}

	return AllocationPlanPayload{
		FullyAllocated: plan.FullyAllocated,
		ItemPlans:      itemPlans,
	}
}

// PlanAllocation handles POST /api/v1/allocation/plan - computes an
// allocation plan without committing anything.
func (s *Server) PlanAllocation(ctx echo.Context) error {
	orderIDs, errResp := parseAllocationRequest(ctx)
	if errResp != nil {
		return ctx.JSON(errResp.Code, errResp)
	}

	cmd, err := commands.NewPlanAllocationCommand(orderIDs)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid allocation request: " + err.Error(),
		})
	}

	plan, err := s.planAllocationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.allocationError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, planToPayload(plan))
}

// RunAllocation handles POST /api/v1/allocation/run - plans and commits
// reservations for the pending backlog in one transaction.
func (s *Server) RunAllocation(ctx echo.Context) error {
	orderIDs, errResp := parseAllocationRequest(ctx)
	if errResp != nil {
		return ctx.JSON(errResp.Code, errResp)
	}

	cmd, err := commands.NewPlanAndAllocateCommand(orderIDs)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid allocation request: " + err.Error(),
		})
	}

	plan, err := s.planAndAllocateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.allocationError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, planToPayload(plan))
}

// allocationError maps planning failures to HTTP statuses.
func (s *Server) allocationError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError

	switch {
	case errors.Is(err, commands.ErrNoOrdersToAllocate):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "No orders to allocate",
		})
	case errors.Is(err, commands.ErrNotEnoughStock):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Not enough stock to fully allocate the batch",
		})
	case errors.Is(err, commands.ErrStockRowConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Stock changed during planning, retry the run",
		})
	case errors.As(err, &notFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid allocation request: " + err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Allocation failed",
		})
	}
}
