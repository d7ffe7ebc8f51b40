package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sweetshop/pkg/app"
	"github.com/ghuser/sweetshop/pkg/auth"
	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/services/sweet/application/handlers"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// SweetRoutes registers sweet endpoints on the provided chi router.
// Every route requires a bearer token. Privileged routes reject customers
// before the request is parsed; the service repeats the check.
func SweetRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	errs := errhttp.New(a.Logger, a.IsProduction())
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireBearer(a.Tokens, a.Logger))
		privileged := auth.RequirePrivileged(a.Logger)
		r.Route("/sweets", func(r chi.Router) {
			r.Get("/", handlers.NewListSweetsHandler(svcs, errs).Execute)
			r.With(privileged).Post("/", handlers.NewPostSweetHandler(svcs, errs).Execute)
			r.Get("/search", handlers.NewSearchSweetsHandler(svcs, errs).Execute)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.NewGetSweetHandler(svcs, errs).Execute)
				r.Post("/purchase", handlers.NewPurchaseSweetHandler(svcs, errs).Execute)
				r.With(privileged).Put("/", handlers.NewPutSweetHandler(svcs, errs).Execute)
				r.With(privileged).Delete("/", handlers.NewDeleteSweetHandler(svcs, errs).Execute)
				r.With(privileged).Post("/restock", handlers.NewRestockSweetHandler(svcs, errs).Execute)
				r.With(privileged).Get("/sales", handlers.NewGetSalesHandler(svcs, errs).Execute)
			})
		})
	})
}
