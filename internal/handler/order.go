package handler

import (
	"net/http"

	"medieaze-storefront/internal/dto"
	"medieaze-storefront/internal/model"
	"medieaze-storefront/internal/receipt"
	"medieaze-storefront/internal/storage"
	"medieaze-storefront/internal/store"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	auth  *store.AuthStore
	local storage.LocalStore
}

func NewOrderHandler(auth *store.AuthStore, local storage.LocalStore) *OrderHandler {
	return &OrderHandler{
		auth:  auth,
		local: local,
	}
}

// ListOrders returns the session user's history, or the guest order list
// when nobody is logged in.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orders(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("id")

	if h.auth.CurrentUser() != nil {
		if err := h.auth.DeleteOrder(ctx, orderID); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}

	if err := h.filterGuestOrders(c, map[string]struct{}{orderID: {}}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *OrderHandler) BulkDeleteOrders(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.BulkDeleteOrdersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if h.auth.CurrentUser() != nil {
		if err := h.auth.BulkDeleteOrders(ctx, req.OrderIDs); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}

	drop := make(map[string]struct{}, len(req.OrderIDs))
	for _, id := range req.OrderIDs {
		drop[id] = struct{}{}
	}
	if err := h.filterGuestOrders(c, drop); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Receipt streams the PDF receipt for one order.
func (h *OrderHandler) Receipt(c echo.Context) error {
	orderID := c.Param("id")

	orders, err := h.orders(c)
	if err != nil {
		return err
	}

	for i := range orders {
		if orders[i].ID == orderID {
			pdf, err := receipt.Generate(&orders[i])
			if err != nil {
				return err
			}
			c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="receipt-`+orderID+`.pdf"`)
			return c.Blob(http.StatusOK, "application/pdf", pdf)
		}
	}

	return echo.NewHTTPError(http.StatusNotFound, "order not found")
}

func (h *OrderHandler) orders(c echo.Context) ([]model.OrderHistoryItem, error) {
	if user := h.auth.CurrentUser(); user != nil {
		return user.OrderHistory, nil
	}

	var orders []model.OrderHistoryItem
	if _, err := h.local.Get(c.Request().Context(), storage.KeyGuestOrders, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.OrderHistoryItem{}
	}
	return orders, nil
}

func (h *OrderHandler) filterGuestOrders(c echo.Context, drop map[string]struct{}) error {
	ctx := c.Request().Context()

	var orders []model.OrderHistoryItem
	if _, err := h.local.Get(ctx, storage.KeyGuestOrders, &orders); err != nil {
		return err
	}

	kept := make([]model.OrderHistoryItem, 0, len(orders))
	for _, order := range orders {
		if _, ok := drop[order.ID]; !ok {
			kept = append(kept, order)
		}
	}

	return h.local.Set(ctx, storage.KeyGuestOrders, kept)
}
