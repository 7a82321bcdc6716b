package handler

import (
	"net/http"
	"time"

	"medieaze-storefront/internal/dto"
	"medieaze-storefront/internal/middleware"
	"medieaze-storefront/internal/model"
	"medieaze-storefront/internal/store"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	auth      *store.AuthStore
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthHandler(auth *store.AuthStore, jwtSecret string, jwtTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	created, err := h.auth.Register(ctx, store.RegisterData{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(http.StatusConflict, echo.Map{
			"success": false,
			"error":   "email already registered",
		})
	}

	token, err := middleware.GenerateToken(req.Email, h.jwtSecret, h.jwtTTL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"token":   token,
		"user":    h.auth.CurrentUser(),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	if !result.Success {
		return c.JSON(http.StatusUnauthorized, result)
	}

	token, err := middleware.GenerateToken(req.Email, h.jwtSecret, h.jwtTTL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   token,
		"user":    result.User,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user := h.auth.CurrentUser()
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req model.UserUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, err := h.auth.UpdateUser(ctx, req)
	if err != nil {
		return err
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if !h.auth.ValidateCurrentPassword(req.CurrentPassword) {
		return echo.NewHTTPError(http.StatusForbidden, "current password is incorrect")
	}
	if err := h.auth.UpdateUserPassword(ctx, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	if err := h.auth.DeleteAccount(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AuthHandler) AddAddress(c echo.Context) error {
	ctx := c.Request().Context()

	var req model.SavedAddress
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	addr, err := h.auth.AddSavedAddress(ctx, req)
	if err != nil {
		return err
	}
	if addr == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}

	return c.JSON(http.StatusCreated, addr)
}

func (h *AuthHandler) DeleteAddress(c echo.Context) error {
	if err := h.auth.DeleteSavedAddress(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AuthHandler) SetDefaultAddress(c echo.Context) error {
	if err := h.auth.SetDefaultAddress(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
