package router

import (
	_ "garage/docs" // swagger spec
	"garage/internal/handlers/appointment"
	"garage/internal/handlers/catalog"
	"garage/internal/handlers/health"
	"garage/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Health      health.Handler
	Catalog     catalog.Handler
	Appointment appointment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Auth           middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Get("/health", r.DomainHandlers.Health.Check)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)

		routerGroup.Route("/admin", func(adminGroup chi.Router) {
			adminGroup.Use(r.Auth.APIKey)

			r.DomainHandlers.Appointment.AdminRouter(adminGroup)
		})
	})
}

func New(domainHandlers DomainHandlers, auth middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Auth:           auth,
	}
}
