package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the HTTP surface of the booking core.
func NewRouter(h *Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/classes/book", h.Book)
		r.Post("/classes/cancel", h.Cancel)

		r.Get("/timeslots", h.ListSlots)
		r.Patch("/timeslots/{id}/credits-slots", h.CreditsSlots)

		r.Get("/users/{id}/bookings", h.UserBookings)
		r.Get("/users/{id}/wallet", h.Wallet)
		r.Post("/users/{id}/wallet/adjust", h.WalletAdjust)
	})

	return r
}
