package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// AssignDelivery handles POST /api/v1/orders/:id/delivery.
func (s *Server) AssignDelivery(c echo.Context) error {
	actor, orderID, err := actorAndID(c)
	if err != nil {
		return err
	}
	var req assignDeliveryRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	agentID, err := parseUUID("agentId", req.AgentID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignDeliveryCommand(kernel.NewUUID(), orderID, actor, agentID)
	if err != nil {
		return err
	}
	assigned, err := s.handlers.AssignDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newDeliveryResponse(deliveryView(assigned)))
}

// ListDeliveries handles GET /api/v1/deliveries.
func (s *Server) ListDeliveries(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req listDeliveriesRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	var status *delivery.Status
	if req.Status != "" {
		parsed, parseErr := delivery.ParseStatus(req.Status)
		if parseErr != nil {
			return parseErr
		}
		status = &parsed
	}

	query, err := queries.NewListDeliveriesQuery(actor, status, defaultPage(req.Page), req.Limit)
	if err != nil {
		return err
	}
	page, err := s.handlers.ListDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPageResponse(page, newDeliveryResponse))
}

// AdvanceDelivery handles POST /api/v1/deliveries/:id/advance.
func (s *Server) AdvanceDelivery(c echo.Context) error {
	actor, deliveryID, err := actorAndID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(deliveryID, actor)
	if err != nil {
		return err
	}
	advanced, err := s.handlers.AdvanceDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDeliveryResponse(deliveryView(advanced)))
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel.
func (s *Server) CancelDelivery(c echo.Context) error {
	actor, deliveryID, err := actorAndID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, actor)
	if err != nil {
		return err
	}
	cancelled, err := s.handlers.CancelDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDeliveryResponse(deliveryView(cancelled)))
}
