package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/ewasl-backend/internal/transport/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Connect  *ConnectHandler
	Accounts *AccountHandler
	Posts    *PostHandler
	Team     *TeamHandler
	Media    *MediaHandler
	Profile  *ProfileHandler
}

// RouterDeps are the cross-cutting pieces of the HTTP stack.
type RouterDeps struct {
	// Global wraps every route, outermost first.
	Global []middleware.Middleware
	// Auth resolves the bearer token. The callback and auth routes pass
	// through it too so their logs carry the user id when one is sent.
	Auth middleware.Middleware
	// Log records requests behind Auth. Probes are not logged.
	Log middleware.Middleware
	// Limit throttles authentication endpoints. Nil entries are skipped.
	Limit middleware.Middleware
}

// NewRouter builds the /api route tree.
func NewRouter(h Handlers, deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Chain(deps.Global...))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found", codeNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", codeBadRequest)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Get("/live", h.Health.Live)
		r.Get("/ready", h.Health.Ready)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Chain(deps.Auth, deps.Log))

			// provider redirect target, reached without a session
			r.Get("/{platform}/callback", h.Connect.Callback)

			r.Route("/auth", func(r chi.Router) {
				r.Use(middleware.Chain(deps.Limit))
				r.Post("/register", h.Auth.Register)
				r.Post("/login", h.Auth.Login)
				r.Post("/refresh", h.Auth.Refresh)
				r.Post("/logout", h.Auth.Logout)
				r.Post("/forgot-password", h.Auth.ForgotPassword)
				r.Post("/reset-password", h.Auth.ResetPassword)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser)

				r.Get("/me", h.Profile.Get)
				r.Patch("/me", h.Profile.Update)

				r.Get("/{platform}/auth", h.Connect.StartAuth)
				r.Get("/{platform}/auth-url", h.Connect.StartAuth)
				r.Post("/{platform}/complete-auth", h.Connect.CompleteAuth)

				r.Route("/social-accounts", func(r chi.Router) {
					r.Get("/", h.Accounts.List)
					r.Post("/", h.Accounts.Create)
					r.Delete("/{id}", h.Accounts.Delete)
				})

				r.Route("/posts", func(r chi.Router) {
					r.Get("/", h.Posts.List)
					r.Post("/", h.Posts.Create)
					r.Get("/{id}", h.Posts.Get)
					r.Put("/{id}", h.Posts.Update)
					r.Delete("/{id}", h.Posts.Delete)
					r.Post("/{id}/schedule", h.Posts.Schedule)
					r.Get("/{id}/deliveries", h.Posts.Deliveries)
				})

				r.Route("/team", func(r chi.Router) {
					r.Get("/members", h.Team.ListMembers)
					r.Patch("/members/{id}", h.Team.UpdateMember)
					r.Delete("/members/{id}", h.Team.RemoveMember)
					r.Get("/invitations", h.Team.ListInvitations)
					r.Post("/invitations", h.Team.Invite)
					r.Delete("/invitations/{"+invitationParam+"}", h.Team.RevokeInvitation)
					r.Post("/invitations/{"+invitationParam+"}/accept", h.Team.AcceptInvitation)
					r.Post("/invitations/{"+invitationParam+"}/decline", h.Team.DeclineInvitation)
				})

				r.Post("/media", h.Media.Upload)
			})
		})
	})

	return r
}
