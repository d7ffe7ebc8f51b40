package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/sweetshop/pkg/app"
	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/services/account/application/handlers"
	appsvcs "github.com/ghuser/sweetshop/services/account/application/services"
)

// AccountRoutes registers the unauthenticated auth endpoints on the provided chi router.
func AccountRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	errs := errhttp.New(a.Logger, a.IsProduction())
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handlers.NewRegisterHandler(svcs, errs).Execute)
		r.Post("/login", handlers.NewLoginHandler(svcs, errs).Execute)
	})
}
