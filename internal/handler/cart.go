package handler

import (
	"fmt"
	"net/http"

	"medieaze-storefront/internal/dto"
	"medieaze-storefront/internal/model"
	"medieaze-storefront/internal/store"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cart *store.CartStore
}

func NewCartHandler(cart *store.CartStore) *CartHandler {
	return &CartHandler{
		cart: cart,
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cart.State())
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.ProductID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "productId is required")
	}

	state, err := h.cart.AddItem(ctx, model.CartItem{
		ProductID:     req.ProductID,
		Name:          req.Name,
		Image:         req.Image,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Quantity:      req.Quantity,
		PurchaseType:  req.PurchaseType,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CartResponse{
		Cart:    state,
		Message: fmt.Sprintf("%s added to cart", req.Name),
	})
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	state, err := h.cart.UpdateQuantity(ctx, c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CartResponse{Cart: state})
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	state, err := h.cart.RemoveItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.CartResponse{Cart: state})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	if err := h.cart.Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.CartResponse{Cart: h.cart.State()})
}
