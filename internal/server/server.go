package server

import (
	"time"

	"medieaze-storefront/internal/handler"
	"medieaze-storefront/internal/middleware"
	"medieaze-storefront/internal/service"
	"medieaze-storefront/internal/storage"
	"medieaze-storefront/internal/store"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	authHandler     *handler.AuthHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	productHandler  *handler.ProductHandler
	jwtSecret       string
	authStore       *store.AuthStore
}

func NewServer(
	authStore *store.AuthStore,
	cartStore *store.CartStore,
	local storage.LocalStore,
	checkoutService service.CheckoutService,
	catalogService service.CatalogService,
	jwtSecret string,
	jwtTTLHours int,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:            e,
		authHandler:     handler.NewAuthHandler(authStore, jwtSecret, time.Duration(jwtTTLHours)*time.Hour),
		cartHandler:     handler.NewCartHandler(cartStore),
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		orderHandler:    handler.NewOrderHandler(authStore, local),
		productHandler:  handler.NewProductHandler(catalogService),
		jwtSecret:       jwtSecret,
		authStore:       authStore,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/products", s.productHandler.ListProducts)
	api.GET("/products/:id", s.productHandler.GetProduct)

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/logout", s.authHandler.Logout)

	session := auth.Group("", middleware.RequireSession(s.jwtSecret, s.authStore))
	session.GET("/me", s.authHandler.Me)
	session.PUT("/profile", s.authHandler.UpdateProfile)
	session.POST("/password", s.authHandler.ChangePassword)
	session.DELETE("/account", s.authHandler.DeleteAccount)
	session.POST("/addresses", s.authHandler.AddAddress)
	session.DELETE("/addresses/:id", s.authHandler.DeleteAddress)
	session.POST("/addresses/:id/default", s.authHandler.SetDefaultAddress)

	// -------- cart (guests included) --------
	cart := api.Group("/cart")
	cart.GET("", s.cartHandler.GetCart)
	cart.POST("/items", s.cartHandler.AddItem)
	cart.PATCH("/items/:id", s.cartHandler.UpdateQuantity)
	cart.DELETE("/items/:id", s.cartHandler.RemoveItem)
	cart.DELETE("", s.cartHandler.ClearCart)

	// -------- checkout --------
	ck := api.Group("/checkout")
	ck.POST("/initiate", s.checkoutHandler.Initiate)
	ck.POST("/confirm", s.checkoutHandler.Confirm)
	ck.POST("/cod", s.checkoutHandler.CashOnDelivery)

	// -------- orders --------
	orders := api.Group("/orders")
	orders.GET("", s.orderHandler.ListOrders)
	orders.DELETE("/:id", s.orderHandler.DeleteOrder)
	orders.POST("/bulk-delete", s.orderHandler.BulkDeleteOrders)
	orders.GET("/:id/receipt", s.orderHandler.Receipt)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
