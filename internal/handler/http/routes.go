package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/version/build", h.getBuildInfo)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.withSession)

		r.Post("/api/user/logout", h.logout)

		r.Route("/accounts", func(r chi.Router) {
			r.Use(withMethodOverride)

			r.Get("/", h.listAccounts)
			r.Post("/", h.createAccount)
			r.Get("/new", h.newAccount)
			r.Get("/search", h.searchAccounts)
			r.Post("/auto_complete", h.autoCompleteAccounts)
			r.Get("/options", h.accountOptions)
			r.Post("/redraw", h.redrawAccounts)

			r.Get("/{id}", h.showAccount)
			r.Put("/{id}", h.updateAccount)
			r.Delete("/{id}", h.deleteAccount)
			r.Get("/{id}/edit", h.editAccount)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
