package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetCart handles GET /api/v1/cart?coupon=CODE.
func (s *Server) GetCart(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req getCartRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	query, err := queries.NewGetCartQuery(sessionKey(c, actor), req.Coupon)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetCart.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartViewResponse(view))
}

// AddCartItem handles POST /api/v1/cart/items.
func (s *Server) AddCartItem(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req addCartItemRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAddCartItemCommand(sessionKey(c, actor), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	updated, err := s.handlers.Cart.AddItem(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(updated))
}

// UpdateCartItem handles PUT /api/v1/cart/items/:productId.
func (s *Server) UpdateCartItem(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req updateCartItemRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateCartItemQuantityCommand(sessionKey(c, actor), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	updated, err := s.handlers.Cart.UpdateQuantity(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(updated))
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:productId.
func (s *Server) RemoveCartItem(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveCartItemCommand(sessionKey(c, actor), c.Param("productId"))
	if err != nil {
		return err
	}
	updated, err := s.handlers.Cart.RemoveItem(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(updated))
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewClearCartCommand(sessionKey(c, actor))
	if err != nil {
		return err
	}
	updated, err := s.handlers.Cart.Clear(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCartResponse(updated))
}
