package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// PlaceOrder handles POST /api/v1/orders: checks out the session cart.
func (s *Server) PlaceOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req placeOrderRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	var addressID *kernel.UUID
	if req.AddressID != "" {
		id, parseErr := parseUUID("addressId", req.AddressID)
		if parseErr != nil {
			return parseErr
		}
		addressID = &id
	}
	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return err
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), actor, sessionKey(c, actor), addressID, method, req.Notes, req.CouponCode,
	)
	if err != nil {
		return err
	}
	placed, err := s.handlers.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newOrderResponse(orderView(placed)))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req listOrdersRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	filter := queries.OrderFilter{Search: req.Search}
	if req.Status != "" {
		status, parseErr := order.ParseStatus(req.Status)
		if parseErr != nil {
			return parseErr
		}
		filter.Status = &status
	}
	if filter.Dates.From, err = parseTime("from", req.From); err != nil {
		return err
	}
	if filter.Dates.To, err = parseTime("to", req.To); err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(actor, filter, defaultPage(req.Page), req.Limit)
	if err != nil {
		return err
	}
	page, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPageResponse(page, newOrderResponse))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	actor, orderID, err := actorAndID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderResponse(view))
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions.
func (s *Server) TransitionOrder(c echo.Context) error {
	actor, orderID, err := actorAndID(c)
	if err != nil {
		return err
	}
	var req transitionOrderRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, target)
	if err != nil {
		return err
	}
	updated, err := s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderResponse(orderView(updated)))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	actor, orderID, err := actorAndID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return err
	}
	cancelled, err := s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderResponse(orderView(cancelled)))
}

// Reorder handles POST /api/v1/orders/:id/reorder: replaces the session cart
// with the order's items at current prices.
func (s *Server) Reorder(c echo.Context) error {
	actor, orderID, err := actorAndID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReorderCommand(orderID, actor, sessionKey(c, actor))
	if err != nil {
		return err
	}
	result, err := s.handlers.Reorder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newReorderResponse(result))
}

func actorAndID(c echo.Context) (kernel.Actor, kernel.UUID, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	id, err := parseUUID("id", c.Param("id"))
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}
	return actor, id, nil
}

func parseUUID(name, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseTime(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return t.UTC(), nil
}

func defaultPage(page int) int {
	if page == 0 {
		return 1
	}
	return page
}
