package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/salon-service/internal/delivery/http/handler"
	"github.com/user/salon-service/internal/delivery/http/middleware"
	"github.com/user/salon-service/web"
)

func New(api *handler.Handler, pages *handler.PageHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", pages.HandleIndex)
	r.Get("/booking", pages.HandleBookingForm)
	r.Post("/booking", pages.HandleBookingSubmit)

	static := web.Static()
	r.Handle("/css/*", static)
	r.Handle("/js/*", static)
	r.Handle("/images/*", static)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", api.HandleHealthCheck)

		r.Route("/appointments", func(r chi.Router) {
			r.Post("/", api.HandleCreateAppointment)
			r.Get("/", api.HandleListAppointments)
			r.Get("/{id}", api.HandleGetAppointment)
			r.Put("/{id}", api.HandleUpdateAppointment)
			r.Delete("/{id}", api.HandleDeleteAppointment)
		})
	})

	return r
}
