package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/auth"
	"marketplace-backend/internal/handler"
	"marketplace-backend/internal/middleware"
	"marketplace-backend/internal/principal"
	"marketplace-backend/internal/service"
)

type Server struct {
	echo           *echo.Echo
	validator      *auth.TokenValidator
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
}

func NewServer(
	validator *auth.TokenValidator,
	catalogService service.CatalogService,
	orderService service.OrderService,
	log *logrus.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = newHTTPErrorHandler(log)

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		validator:      validator,
		productHandler: handler.NewProductHandler(catalogService),
		orderHandler:   handler.NewOrderHandler(orderService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(s.validator)
	optionalAuth := middleware.OptionalAuth(s.validator)
	staffOnly := middleware.RequireRole(principal.RoleAdmin, principal.RoleVendor)

	// -------- catalog --------
	products := api.Group("/products")
	products.GET("", s.productHandler.GetProducts, optionalAuth)
	products.GET("/:id", s.productHandler.GetProduct, optionalAuth)
	products.POST("", s.productHandler.CreateProduct, requireAuth, staffOnly)
	products.PUT("/:id", s.productHandler.UpdateProduct, requireAuth)
	products.DELETE("/:id", s.productHandler.DeleteProduct, requireAuth)

	// -------- orders --------
	orders := api.Group("/orders", requireAuth)
	orders.POST("", s.orderHandler.PlaceOrder)
	orders.GET("", s.orderHandler.GetOrders, staffOnly)
	orders.GET("/myorders", s.orderHandler.GetMyOrders)
	orders.GET("/:id", s.orderHandler.GetOrder)
	orders.PUT("/:id/pay", s.orderHandler.PayOrder)
	orders.PUT("/:id/deliver", s.orderHandler.DeliverOrder, staffOnly)
	orders.POST("/:id/return", s.orderHandler.RequestReturn)
	orders.PUT("/:id/return-status", s.orderHandler.UpdateReturnStatus, staffOnly)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
