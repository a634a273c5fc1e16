package main

import (
	"log"
	"net/http"

	"storefront-be/internal/api"
	"storefront-be/internal/auth"
	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/payment/webhook"
	"storefront-be/internal/product"
	"storefront-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)
	identity := auth.NewService(userRepo)

	productRepo := product.NewRepository(database)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, identity)

	gateway := payment.NewStripeGateway(cfg)
	checkoutSvc := checkout.NewService(cartRepo, orderRepo, identity, gateway)

	router := api.NewRouter(api.Handlers{
		Auth:     api.NewAuthHandler(userSvc),
		Product:  api.NewProductHandler(productRepo),
		Cart:     api.NewCartHandler(cartSvc),
		Checkout: api.NewCheckoutHandler(checkoutSvc),
		Order:    api.NewOrderHandler(orderSvc),
		Webhook:  webhook.NewHandler(orderSvc, gateway),
	})

	log.Printf("server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}
