package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/babjihd-maker/Pearl-Tailor/internal/middleware"
)

// SetupRouter configures the HTTP routes and middleware of the shop API.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Post("/orders", h.CreateOrder)
			r.Get("/orders", h.ListOrders)
			r.Get("/orders/{orderID}", h.GetOrder)
			r.Put("/orders/{orderID}", h.UpdateOrder)
			r.Patch("/orders/{orderID}/status", h.SetStatus)
			r.Post("/orders/{orderID}/collect", h.CollectPayment)

			r.Get("/customers", h.ListCustomers)
			r.Get("/customers/{mobile}", h.FindCustomer)

			r.Get("/billing", h.Billing)
			r.Get("/dashboard", h.Dashboard)

			r.Post("/estimate", h.Estimate)

			r.Get("/inventory", h.ListInventory)
			r.Post("/inventory", h.CreateFabric)
			r.Put("/inventory/{fabricID}", h.UpdateFabric)
			r.Delete("/inventory/{fabricID}", h.DeleteFabric)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}

func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
