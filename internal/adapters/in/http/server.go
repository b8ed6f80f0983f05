// Package http exposes the ordering use cases as a JSON REST API on echo.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type (
	orderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}

	orderTransitioner interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) error
	}

	shippingUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateShippingCommand) error
	}

	orderDetailEditor interface {
		HandleAdd(ctx context.Context, cmd commands.AddOrderDetailCommand) (order.OrderDetailID, error)
		HandleRemove(ctx context.Context, cmd commands.RemoveOrderDetailCommand) error
		HandleUpdateQuantity(ctx context.Context, cmd commands.UpdateOrderDetailQuantityCommand) error
	}

	summaryReader interface {
		Handle(ctx context.Context, query queries.GetOrderSummaryQuery) (order.Summary, error)
	}

	userOrdersReader interface {
		Handle(ctx context.Context, query queries.ListUserOrdersQuery) ([]order.Summary, error)
	}
)

// transitionRoutes maps the last path segment of POST /orders/:id/<step> to its action.
var transitionRoutes = map[string]commands.Action{
	"confirm":        commands.ActionConfirm,
	"ship":           commands.ActionShip,
	"deliver":        commands.ActionDeliver,
	"cancel":         commands.ActionCancel,
	"pay":            commands.ActionMarkPaid,
	"payment-failed": commands.ActionMarkPaymentFailed,
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler    orderCreator
	transitionHandler     orderTransitioner
	updateShippingHandler shippingUpdater
	orderDetailHandler    orderDetailEditor

	getOrderSummaryHandler summaryReader
	listUserOrdersHandler  userOrdersReader

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler orderCreator,
	transitionHandler orderTransitioner,
	updateShippingHandler shippingUpdater,
	orderDetailHandler orderDetailEditor,
	getOrderSummaryHandler summaryReader,
	listUserOrdersHandler userOrdersReader,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		createOrderHandler:     createOrderHandler,
		transitionHandler:      transitionHandler,
		updateShippingHandler:  updateShippingHandler,
		orderDetailHandler:     orderDetailHandler,
		getOrderSummaryHandler: getOrderSummaryHandler,
		listUserOrdersHandler:  listUserOrdersHandler,
		logger:                 logger.With("component", "http"),
	}
}

// RegisterRoutes installs the request validator and every API route on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/users/:userId/orders", s.ListUserOrders)
	for step, action := range transitionRoutes {
		api.POST("/orders/:id/"+step, s.transition(action))
	}
	api.PUT("/orders/:id/shipping", s.UpdateShipping)
	api.POST("/orders/:id/details", s.AddOrderDetail)
	api.DELETE("/orders/:id/details/:detailId", s.RemoveOrderDetail)
	api.PATCH("/orders/:id/details/:detailId", s.UpdateOrderDetailQuantity)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := req.toCommand()
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.createOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/v1/orders/"+cmd.OrderID().String())
	return c.JSON(http.StatusCreated, CreatedOrderResponse{OrderID: cmd.OrderID().String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	query, err := queries.NewGetOrderSummaryQuery(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondSummary(c, query)
}

// ListUserOrders handles GET /api/v1/users/:userId/orders.
func (s *Server) ListUserOrders(c echo.Context) error {
	query, err := queries.NewListUserOrdersQuery(c.Param("userId"))
	if err != nil {
		return s.fail(c, err)
	}

	summaries, err := s.listUserOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, summaries)
}

// transition handles POST /api/v1/orders/:id/<step> and answers with the fresh summary.
func (s *Server) transition(action commands.Action) echo.HandlerFunc {
	return func(c echo.Context) error {
		orderID, err := order.OrderIDFromString(c.Param("id"))
		if err != nil {
			return s.fail(c, err)
		}

		cmd, err := commands.NewTransitionOrderCommand(orderID, action)
		if err != nil {
			return s.fail(c, err)
		}

		if err = s.transitionHandler.Handle(c.Request().Context(), cmd); err != nil {
			return s.fail(c, err)
		}

		return s.respondSummaryOf(c, orderID)
	}
}

// UpdateShipping handles PUT /api/v1/orders/:id/shipping.
func (s *Server) UpdateShipping(c echo.Context) error {
	orderID, err := order.OrderIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var req UpdateShippingRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := req.toCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.updateShippingHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondSummaryOf(c, orderID)
}

// AddOrderDetail handles POST /api/v1/orders/:id/details.
func (s *Server) AddOrderDetail(c echo.Context) error {
	orderID, err := order.OrderIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var req ItemRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	item, err := req.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAddOrderDetailCommand(orderID, item)
	if err != nil {
		return s.fail(c, err)
	}

	detailID, err := s.orderDetailHandler.HandleAdd(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedOrderDetailResponse{OrderDetailID: detailID.String()})
}

// RemoveOrderDetail handles DELETE /api/v1/orders/:id/details/:detailId.
func (s *Server) RemoveOrderDetail(c echo.Context) error {
	orderID, detailID, err := detailPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRemoveOrderDetailCommand(orderID, detailID)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.orderDetailHandler.HandleRemove(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateOrderDetailQuantity handles PATCH /api/v1/orders/:id/details/:detailId.
func (s *Server) UpdateOrderDetailQuantity(c echo.Context) error {
	orderID, detailID, err := detailPath(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req UpdateQuantityRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateOrderDetailQuantityCommand(orderID, detailID, req.Quantity)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.orderDetailHandler.HandleUpdateQuantity(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) respondSummaryOf(c echo.Context, orderID order.OrderID) error {
	query, err := queries.NewGetOrderSummaryQuery(orderID.String())
	if err != nil {
		return s.fail(c, err)
	}

	return s.respondSummary(c, query)
}

func (s *Server) respondSummary(c echo.Context, query queries.GetOrderSummaryQuery) error {
	summary, err := s.getOrderSummaryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// requestError is a malformed or invalid request body.
type requestError struct {
	message string
}

func (e *requestError) Error() string { return e.message }

// bind decodes and validates the request body.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return &requestError{message: "Invalid request body"}
	}
	if err := c.Validate(req); err != nil {
		return &requestError{message: err.Error()}
	}
	return nil
}

// fail writes the error response for err.
func (s *Server) fail(c echo.Context, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			slog.String("method", c.Request().Method),
			slog.String("route", c.Path()),
			slog.Any("error", err))
		return errorBody(c, status, "Internal server error")
	}

	return errorBody(c, status, err.Error())
}

// statusOf maps the error taxonomy to HTTP status codes.
func statusOf(err error) int {
	var reqErr *requestError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrValueIsDuplicate),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrCurrencyMismatch):
		return http.StatusUnprocessableEntity
	case errs.IsValidation(err), errors.As(err, &reqErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorResponse{Code: status, Message: message})
}

func detailPath(c echo.Context) (order.OrderID, order.OrderDetailID, error) {
	orderID, orderErr := order.OrderIDFromString(c.Param("id"))
	detailID, detailErr := order.OrderDetailIDFromString(c.Param("detailId"))
	return orderID, detailID, errors.Join(orderErr, detailErr)
}
