// Package http is the echo adapter of the fulfillment service: bearer token
// identity, request validation, routing to command and query handlers and
// mapping of domain errors to status codes.
package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	Cart            commands.CartCommandHandler
	PlaceOrder      commands.PlaceOrderCommandHandler
	TransitionOrder commands.TransitionOrderCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	Reorder         commands.ReorderCommandHandler
	AssignDelivery  commands.AssignDeliveryCommandHandler
	AdvanceDelivery commands.AdvanceDeliveryCommandHandler
	CancelDelivery  commands.CancelDeliveryCommandHandler

	GetCart        queries.GetCartQueryHandler
	GetOrder       queries.GetOrderQueryHandler
	ListOrders     queries.ListOrdersQueryHandler
	ListDeliveries queries.ListDeliveriesQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	auth     *Authenticator
	logger   zerolog.Logger
}

func NewServer(handlers Handlers, auth *Authenticator, logger zerolog.Logger) *Server {
	return &Server{
		handlers: handlers,
		auth:     auth,
		logger:   logger.With().Str("component", "http").Logger(),
	}
}

// NewEcho builds the echo instance with every route registered. gatherer
// backs /metrics.
func (s *Server) NewEcho(gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(s.logger)
	e.Use(middleware.Recover(), middleware.RequestID(), s.contextLogger(), s.requestLogger())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api/v1", s.auth.Middleware())

	api.GET("/cart", s.GetCart)
	api.POST("/cart/items", s.AddCartItem)
	api.PUT("/cart/items/:productId", s.UpdateCartItem)
	api.DELETE("/cart/items/:productId", s.RemoveCartItem)
	api.DELETE("/cart", s.ClearCart)

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/reorder", s.Reorder)
	api.POST("/orders/:id/delivery", s.AssignDelivery)

	api.GET("/deliveries", s.ListDeliveries)
	api.POST("/deliveries/:id/advance", s.AdvanceDelivery)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)

	return e
}

// contextLogger attaches the server logger, tagged with the request id, to
// the request context so handlers below can use zerolog.Ctx.
func (s *Server) contextLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			logger := s.logger.With().
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Logger()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))
			return next(c)
		}
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// bind decodes path, query and body parameters into req and validates it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
