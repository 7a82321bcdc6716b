package handler

import (
	"errors"
	"net/http"

	"medieaze-storefront/internal/checkout"
	"medieaze-storefront/internal/dto"
	"medieaze-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) Initiate(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.InitiateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.checkoutService.Initiate(ctx, req.FlowID)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
		}
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) Confirm(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ConfirmCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.checkoutService.Confirm(ctx, &req)
	if err != nil {
		return checkoutError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *CheckoutHandler) CashOnDelivery(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CashOnDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.checkoutService.CashOnDelivery(ctx, &req)
	if err != nil {
		return checkoutError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func checkoutError(err error) error {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	case errors.Is(err, service.ErrMissingAddress):
		return echo.NewHTTPError(http.StatusBadRequest, "shipping address is required")
	case errors.Is(err, checkout.ErrFlowInProgress):
		return echo.NewHTTPError(http.StatusConflict, "checkout already in progress")
	default:
		return err
	}
}
