package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace-backend/internal/dto"
	"marketplace-backend/internal/middleware"
	"marketplace-backend/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	var req dto.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.Place(ctx, &req, p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	order, err := h.orderService.Get(ctx, c.Param("id"), p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetMyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	orders, err := h.orderService.ListMine(ctx, p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	orders, err := h.orderService.ListAll(ctx, p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) PayOrder(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	var confirmation dto.PaymentConfirmation
	if err := c.Bind(&confirmation); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.MarkPaid(ctx, c.Param("id"), &confirmation, p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeliverOrder(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	order, err := h.orderService.MarkDelivered(ctx, c.Param("id"), p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) RequestReturn(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	var req dto.ReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.RequestReturn(ctx, c.Param("id"), &req, p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateReturnStatus(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	var req dto.ReturnStatusUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.ResolveReturn(ctx, c.Param("id"), &req, p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}
