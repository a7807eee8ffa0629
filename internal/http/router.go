package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"rentroll/internal/auth"
	authHandler "rentroll/internal/http/auth"
	"rentroll/internal/http/billing"
	"rentroll/internal/http/building"
	"rentroll/internal/http/dashboard"
	"rentroll/internal/http/importcsv"
	"rentroll/internal/http/tenant"
	"rentroll/internal/http/unit"
)

func New(
	tokens *auth.TokenIssuer,
	allowedOrigins []string,
	authV1 *authHandler.Handler,
	buildingsV1 *building.Handler,
	unitsV1 *unit.Handler,
	tenantsV1 *tenant.Handler,
	billsV1 *billing.Handler,
	importV1 *importcsv.Handler,
	dashboardV1 *dashboard.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authHandler.RequireOwner(tokens))

			r.Route("/buildings", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					buildingsV1.Routes(r)
					unitsV1.BuildingRoutes(r)
				})
			})

			r.Route("/units", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				unitsV1.Routes(r)
			})

			r.Route("/tenants", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				tenantsV1.Routes(r)
			})

			r.Route("/bills", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.AllowContentType("application/json"))
					billsV1.Routes(r)
				})

				// Multipart CSV upload, so no content-type restriction.
				r.Route("/import", importV1.Routes)
			})

			r.Route("/dashboard", dashboardV1.Routes)
		})
	})

	return router
}
