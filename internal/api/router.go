package api

import (
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/payment/webhook"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth     *AuthHandler
	Product  *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Order    *OrderHandler
	Webhook  *webhook.Handler
}

func NewRouter(h Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Post("/auth/register", h.Auth.Register)
	r.Post("/auth/login", h.Auth.Login)

	r.Get("/products", h.Product.ListProducts)
	r.Get("/products/{productId}", h.Product.GetProduct)

	r.Route("/carts", func(r chi.Router) {
		r.Post("/", h.Cart.CreateCart)
		r.Get("/{cartId}", h.Cart.GetCart)
		r.Post("/{cartId}/items", h.Cart.AddItem)
		r.Put("/{cartId}/items/{productId}", h.Cart.UpdateItem)
		r.Delete("/{cartId}/items/{productId}", h.Cart.RemoveItem)
	})

	r.Post("/checkout", h.Checkout.Checkout)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.Order.GetAllOrders)
		r.Get("/{orderId}", h.Order.GetOrder)
	})

	r.Post("/webhooks/payment", h.Webhook.HandleWebhook)

	return r
}
