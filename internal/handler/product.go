package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace-backend/internal/dto"
	"marketplace-backend/internal/middleware"
	"marketplace-backend/internal/service"
)

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	filter := service.CatalogFilter{
		Keyword:     c.QueryParam("keyword"),
		VendorScope: c.QueryParam("vendorScope"),
	}

	products, err := h.catalogService.List(ctx, filter, p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	product, err := h.catalogService.Get(ctx, c.Param("id"), p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.catalogService.Create(ctx, &req, p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	var req dto.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.catalogService.Update(ctx, c.Param("id"), &req, p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	p := middleware.PrincipalFromContext(c)

	if err := h.catalogService.Delete(ctx, c.Param("id"), p); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "product removed"})
}
