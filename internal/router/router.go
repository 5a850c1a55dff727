package router

import (
	"net/http"

	"donut-store/internal/config"
	"donut-store/internal/handler"
	"donut-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Payment *handler.PaymentHandler
}

// New builds the HTTP route tree. Public storefront routes live under /api,
// the back-office under /api/admin behind the API key.
func New(cfg *config.Config, h Handlers, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.Product.List)
		r.Get("/products/{id}", h.Product.GetByID)

		// Cart and checkout need a session; payment status does not, the
		// customer may land on it from the gateway redirect in a fresh tab.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession)

			r.Get("/cart", h.Cart.Get)
			r.Delete("/cart", h.Cart.Clear)
			r.Post("/cart/items", h.Cart.AddItem)
			r.Put("/cart/items/{id}", h.Cart.UpdateItem)
			r.Delete("/cart/items/{id}", h.Cart.RemoveItem)

			r.Post("/checkout", h.Order.Checkout)
		})

		r.Post("/payment", h.Payment.Create)
		r.Get("/payment/status", h.Payment.Status)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Admin.APIKey, logger))

			r.Get("/products", h.Product.ListAll)
			r.Post("/products", h.Product.Create)
			r.Put("/products/{id}", h.Product.Update)
			r.Delete("/products/{id}", h.Product.Delete)

			r.Get("/orders", h.Order.List)
			r.Get("/orders/{id}", h.Order.GetByID)
			r.Put("/orders/{id}/status", h.Order.SetStatus)
			r.Put("/orders/{id}/payment-status", h.Order.SetPaymentStatus)
		})
	})

	return r
}
