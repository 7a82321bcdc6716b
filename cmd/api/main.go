package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medieaze-storefront/internal/checkout"
	"medieaze-storefront/internal/client"
	"medieaze-storefront/internal/config"
	"medieaze-storefront/internal/events"
	"medieaze-storefront/internal/repository"
	"medieaze-storefront/internal/server"
	"medieaze-storefront/internal/service"
	"medieaze-storefront/internal/storage"
	"medieaze-storefront/internal/store"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabaseURL)
	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)

	productRepo := repository.NewProductRepository(db)
	if err := productRepo.Seed(context.Background()); err != nil {
		log.Fatal("seed catalog:", err)
	}

	bus := events.NewBus()
	bus.Subscribe(func(change events.StorageChange) {
		if change.Key == storage.KeyGuestOrders {
			log.Println("guest order list updated")
		}
	})
	local := storage.NewLocalStore(db, bus)

	startCtx := context.Background()
	cartStore := store.NewCartStore(startCtx, local)
	authStore := store.NewAuthStore(startCtx, local)
	processor := checkout.NewProcessor(cartStore, authStore, local)

	checkoutService := service.NewCheckoutService(
		cartStore, processor, razorpayClient,
		cfg.Currency, cfg.Razorpay.KeyID,
	)
	catalogService := service.NewCatalogService(productRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(
		authStore, cartStore, local,
		checkoutService, catalogService,
		cfg.JWT.Secret, cfg.JWT.TTLHours,
	)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
