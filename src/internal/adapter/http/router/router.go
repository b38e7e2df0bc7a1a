package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type RouteRegistrar interface {
	RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler)
}

type Controllers struct {
	Account   RouteRegistrar
	Ledger    RouteRegistrar
	Admin     RouteRegistrar
	Director  RouteRegistrar
	Statement RouteRegistrar
	News      RouteRegistrar
	Contact   RouteRegistrar
	Charges   RouteRegistrar
}

type AuthMiddlewares struct {
	User     func(http.Handler) http.Handler
	Admin    func(http.Handler) http.Handler
	Director func(http.Handler) http.Handler
}

func New(controllers Controllers, auth AuthMiddlewares) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	registerSwaggerRoutes(r)

	register := func(c RouteRegistrar, mw func(http.Handler) http.Handler) {
		if c != nil {
			c.RegisterRoutes(r, mw)
		}
	}

	register(controllers.Account, auth.User)
	register(controllers.Statement, auth.User)
	register(controllers.News, auth.User)
	register(controllers.Contact, nil)
	register(controllers.Charges, nil)
	register(controllers.Ledger, auth.Admin)
	register(controllers.Admin, auth.Admin)
	register(controllers.Director, auth.Director)

	return r
}
