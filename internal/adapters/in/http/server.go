// Package http exposes the fulfillment workflow over an echo HTTP API.
// The acting identity is taken on trust from the X-Actor-Id and X-Actor-Role
// headers; authentication lives with the gateway in front of this service.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	actorIDHeader        = "X-Actor-Id"
	actorRoleHeader      = "X-Actor-Role"
	idempotencyKeyHeader = "Idempotency-Key"

	// commandTimeout bounds the execution time of one mutating call.
	commandTimeout = 10 * time.Second
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler     commands.PlaceOrderCommandHandler
	transitionHandler     commands.TransitionOrderCommandHandler
	markLineHandler       commands.MarkLineCommandHandler
	listProductHandler    commands.ListProductCommandHandler
	replenishHandler      commands.ReplenishStockCommandHandler
	getOrderHandler       queries.GetOrderQueryHandler
	supplierOrdersHandler queries.GetSupplierOrdersQueryHandler
	customerOrdersHandler queries.GetCustomerOrdersQueryHandler
	getStockHandler       queries.GetStockQueryHandler
	watchOrderHandler     queries.WatchOrderQueryHandler
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	transitionHandler commands.TransitionOrderCommandHandler,
	markLineHandler commands.MarkLineCommandHandler,
	listProductHandler commands.ListProductCommandHandler,
	replenishHandler commands.ReplenishStockCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	supplierOrdersHandler queries.GetSupplierOrdersQueryHandler,
	customerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	getStockHandler queries.GetStockQueryHandler,
	watchOrderHandler queries.WatchOrderQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:     placeOrderHandler,
		transitionHandler:     transitionHandler,
		markLineHandler:       markLineHandler,
		listProductHandler:    listProductHandler,
		replenishHandler:      replenishHandler,
		getOrderHandler:       getOrderHandler,
		supplierOrdersHandler: supplierOrdersHandler,
		customerOrdersHandler: customerOrdersHandler,
		getStockHandler:       getStockHandler,
		watchOrderHandler:     watchOrderHandler,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/lines/:product_id/mark", s.MarkLine)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/watch", s.WatchOrder)
	api.GET("/suppliers/:id/orders", s.GetSupplierOrders)
	api.GET("/customers/:id/orders", s.GetCustomerOrders)
	api.POST("/products", s.ListProduct)
	api.POST("/products/:id/replenish", s.ReplenishStock)
	api.GET("/products/:id/stock", s.GetStock)

	e.GET("/health", s.Health)
}

// PlaceOrder handles POST /api/v1/orders. The placing customer is the acting
// identity; the order starts in placed with version 1.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req PlaceOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := placeOrderCommandFromRequest(by, req)
	if err != nil {
		return writeError(ctx, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), commandTimeout)
	defer cancel()

	if err = s.placeOrderHandler.Handle(reqCtx, cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{
		OrderID: cmd.OrderID().String(),
		Status:  order.Placed.String(),
		Version: 1,
	})
}

// TransitionOrder handles POST /api/v1/orders/:id/transition. Retries may
// carry an Idempotency-Key header to get the stored outcome replayed instead
// of a version conflict.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(
		orderID, target, by, req.ExpectedVersion,
		ctx.Request().Header.Get(idempotencyKeyHeader), req.Note,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), commandTimeout)
	defer cancel()

	result, err := s.transitionHandler.Handle(reqCtx, cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		OrderID:  result.OrderID.String(),
		Status:   result.Status.String(),
		Version:  result.Version,
		Replayed: result.Replayed,
	})
}

// MarkLine handles POST /api/v1/orders/:id/lines/:product_id/mark. It records
// picking/packing progress on one line; the picking → packing and packing →
// ready transitions are gated on every line being marked.
func (s *Server) MarkLine(ctx echo.Context) error {
	by, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}
	productID, err := kernel.UUIDFromString(ctx.Param("product_id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req MarkLineRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	stage := commands.StageUnknown
	switch req.Stage {
	case "picked":
		stage = commands.StagePicked
	case "packed":
		stage = commands.StagePacked
	}

	cmd, err := commands.NewMarkLineCommand(orderID, productID, stage, by, req.ExpectedVersion)
	if err != nil {
		return writeError(ctx, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), commandTimeout)
	defer cancel()

	if err = s.markLineHandler.Handle(reqCtx, cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderDetailToResponse(detail))
}

// WatchOrder handles GET /api/v1/orders/:id/watch. It streams updates as
// newline-delimited JSON: first a snapshot of the committed row, then live
// updates until the order reaches a terminal status or the client goes away.
func (s *Server) WatchOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewWatchOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	updates, err := s.watchOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "application/x-ndjson")
	resp.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(resp)
	for update := range updates {
		if err = enc.Encode(OrderUpdateResponse{
			OrderID: update.OrderID.String(),
			Status:  update.Status.String(),
			Version: update.Version,
			At:      update.At,
		}); err != nil {
			return nil
		}
		resp.Flush()
	}

	return nil
}

// GetSupplierOrders handles GET /api/v1/suppliers/:id/orders with an optional
// ?status= filter.
func (s *Server) GetSupplierOrders(ctx echo.Context) error {
	supplierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	statusFilter, err := statusFilterFromQuery(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetSupplierOrdersQuery(supplierID, statusFilter)
	if err != nil {
		return writeError(ctx, err)
	}

	summaries, err := s.supplierOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summariesToResponse(summaries))
}

// GetCustomerOrders handles GET /api/v1/customers/:id/orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return writeError(ctx, err)
	}

	summaries, err := s.customerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summariesToResponse(summaries))
}

// ListProduct handles POST /api/v1/products.
func (s *Server) ListProduct(ctx echo.Context) error {
	var req ListProductRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewListProductCommand(productID, req.InitialStock)
	if err != nil {
		return writeError(ctx, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), commandTimeout)
	defer cancel()

	if err = s.listProductHandler.Handle(reqCtx, cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ReplenishStock handles POST /api/v1/products/:id/replenish.
func (s *Server) ReplenishStock(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req ReplenishRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewReplenishStockCommand(productID, req.Quantity)
	if err != nil {
		return writeError(ctx, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), commandTimeout)
	defer cancel()

	if err = s.replenishHandler.Handle(reqCtx, cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetStock handles GET /api/v1/products/:id/stock.
func (s *Server) GetStock(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetStockQuery(productID)
	if err != nil {
		return writeError(ctx, err)
	}

	levels, err := s.getStockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StockResponse{
		ProductID: levels.ProductID.String(),
		OnHand:    levels.OnHand,
		Reserved:  levels.Reserved,
		Available: levels.Available,
	})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// actorFromHeaders builds the acting identity from the X-Actor-Id and
// X-Actor-Role headers.
func actorFromHeaders(ctx echo.Context) (actor.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(actorIDHeader))
	if err != nil {
		return actor.Actor{}, errs.NewValueIsInvalidErrorWithCause(actorIDHeader, err)
	}

	role, err := actor.RoleFromString(ctx.Request().Header.Get(actorRoleHeader))
	if err != nil {
		return actor.Actor{}, errs.NewValueIsInvalidErrorWithCause(actorRoleHeader, err)
	}

	return actor.NewActor(id, role)
}

func statusFilterFromQuery(ctx echo.Context) (*order.Status, error) {
	raw := ctx.QueryParam("status")
	if raw == "" {
		return nil, nil
	}
	status, err := order.StatusFromString(raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func placeOrderCommandFromRequest(by actor.Actor, req PlaceOrderRequest) (commands.PlaceOrderCommand, error) {
	supplierID, err := kernel.UUIDFromString(req.SupplierID)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		productID, lineErr := kernel.UUIDFromString(line.ProductID)
		if lineErr != nil {
			return commands.PlaceOrderCommand{}, lineErr
		}
		unitPrice, lineErr := kernel.NewMoney(line.UnitPriceCents)
		if lineErr != nil {
			return commands.PlaceOrderCommand{}, lineErr
		}
		item, lineErr := order.NewItem(productID, line.Name, unitPrice, line.Quantity)
		if lineErr != nil {
			return commands.PlaceOrderCommand{}, lineErr
		}
		items = append(items, item)
	}

	address, err := order.NewAddress(req.Address.Street, req.Address.City, req.Address.Phone)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	deliveryFee, err := kernel.NewMoney(req.DeliveryFeeCents)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	discount, err := kernel.NewMoney(req.DiscountCents)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}

	return commands.NewPlaceOrderCommand(
		kernel.NewUUID(), by.ID(), supplierID, items, address, deliveryFee, discount,
	)
}

func orderDetailToResponse(detail *queries.OrderDetail) OrderDetailResponse {
	items := make([]OrderLineResponse, 0, len(detail.Items))
	for _, line := range detail.Items {
		items = append(items, OrderLineResponse{
			ProductID:      line.ProductID.String(),
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			Picked:         line.Picked,
			Packed:         line.Packed,
		})
	}

	history := make([]StatusChangeResponse, 0, len(detail.History))
	for _, change := range detail.History {
		history = append(history, StatusChangeResponse{
			Status:  change.Status.String(),
			ActorID: change.ActorID.String(),
			Role:    change.Role.String(),
			Note:    change.Note,
			At:      change.At,
		})
	}

	return OrderDetailResponse{
		OrderID:          detail.ID.String(),
		CustomerID:       detail.CustomerID.String(),
		SupplierID:       detail.SupplierID.String(),
		Status:           detail.Status.String(),
		SubtotalCents:    detail.SubtotalCents,
		DeliveryFeeCents: detail.DeliveryFeeCents,
		DiscountCents:    detail.DiscountCents,
		TotalCents:       detail.TotalCents,
		Address: AddressRequest{
			Street: detail.Street,
			City:   detail.City,
			Phone:  detail.Phone,
		},
		Version:   detail.Version,
		CreatedAt: detail.CreatedAt,
		Items:     items,
		History:   history,
	}
}

func summariesToResponse(summaries []queries.OrderSummary) []OrderSummaryResponse {
	response := make([]OrderSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, OrderSummaryResponse{
			OrderID:    summary.ID.String(),
			CustomerID: summary.CustomerID.String(),
			SupplierID: summary.SupplierID.String(),
			Status:     summary.Status.String(),
			TotalCents: summary.TotalCents,
			Version:    summary.Version,
			CreatedAt:  summary.CreatedAt,
		})
	}
	return response
}
