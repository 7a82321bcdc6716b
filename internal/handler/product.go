package handler

import (
	"net/http"

	"medieaze-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	if category := c.QueryParam("category"); category != "" {
		products, err := h.catalogService.ByCategory(ctx, category)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, products)
	}

	products, err := h.catalogService.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.catalogService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, product)
}
