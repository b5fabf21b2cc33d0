package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Catalog      *CatalogHandler
	Reservations *ReservationHandler
	Dashboard    *DashboardHandler
	Middleware   []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	for _, mw := range cfg.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if cfg.Catalog != nil {
		r.Route("/classes", func(r chi.Router) {
			r.Get("/", cfg.Catalog.List)
			r.Get("/calendar", cfg.Catalog.Calendar)
		})
	}

	if cfg.Reservations != nil {
		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", cfg.Reservations.Create)
			r.Get("/my", cfg.Reservations.ListMine)
			r.Delete("/{reservationID}", cfg.Reservations.Cancel)
			r.Put("/{reservationID}/confirm", cfg.Reservations.Confirm)
			r.Put("/{reservationID}/complete", cfg.Reservations.Complete)
		})
	}

	if cfg.Dashboard != nil {
		r.Get("/dashboard/summary", cfg.Dashboard.Summary)
	}

	return r
}
