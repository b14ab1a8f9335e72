// Package api wires the HTTP surface: router, middleware, handlers, and the
// JSON response shapes shared with the mobile and CLI clients.
package api

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/coachpad/coachpad/internal/api/handler"
	"github.com/coachpad/coachpad/internal/api/middleware"
	"github.com/coachpad/coachpad/internal/auth"
	"github.com/coachpad/coachpad/internal/catalog"
	"github.com/coachpad/coachpad/internal/development"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger    handler.DBPinger
	Version     string
	Tokens      *auth.TokenService
	AuthService *auth.Service
	Users       auth.UserRepository
	Catalog     catalog.Repository
	Physical    development.Repository[development.Physical]
	Conditional development.Repository[development.Conditional]
	Endurance   development.Repository[development.Endurance]
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	authHandler := handler.NewAuthHandler(deps.AuthService)
	authed := middleware.Auth(deps.Tokens)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Get("/profile", authHandler.Profile)
				r.Get("/profile/with-team", authHandler.ProfileWithTeam)
				r.Get("/verify-token", authHandler.VerifyToken)
				r.Post("/logout", authHandler.Logout)
			})
		})

		physical := handler.NewPhysicalHandler(deps.Physical, deps.Catalog, deps.Users)
		conditional := handler.NewConditionalHandler(deps.Conditional, deps.Catalog, deps.Users)
		endurance := handler.NewEnduranceHandler(deps.Endurance, deps.Catalog, deps.Users)

		mountDomain(r, development.DomainPhysical, authed, physical)
		mountDomain(r, development.DomainConditional, authed, conditional)
		mountDomain(r, development.DomainEndurance, authed, endurance)
	})

	return r
}

// mountDomain registers the shared endpoint family of one metric domain
// under /api/{domain}. All routes require a valid token; writes additionally
// require the coach role.
func mountDomain[R any, P development.RecordPtr[R]](r chi.Router, domain string, authed func(http.Handler) http.Handler, h *handler.DevelopmentHandler[R, P]) {
	r.Route("/"+domain, func(r chi.Router) {
		r.Use(authed)

		r.Get("/leagues", h.Leagues)
		r.Get("/teams/{leagueId}", h.Teams)
		r.Get("/footballers/{teamId}", h.Footballers)
		r.Get("/data/{footballerId}", h.DataRange)
		r.Get("/data/{footballerId}/{date}", h.DataByDate)
		r.Get("/history/{footballerId}", h.History)
		r.Post("/generate-graph", h.GenerateGraph)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCoach)
			r.Post("/data/{footballerId}/{date}", h.Add)
			r.Put("/data/entry/{entryId}", h.Update)
			r.Delete("/data/entry/{entryId}", h.Delete)
		})
	})
}
