package console

import (
	"net/http"

	"github.com/bornholm/compass/internal/ratelimit"
	"github.com/bornholm/compass/internal/session"
	"github.com/bornholm/compass/pkg/help"
	"github.com/bornholm/compass/pkg/nav"
	"github.com/bornholm/compass/pkg/navbar"
	"golang.org/x/sync/singleflight"
)

// Handler serves the navigation bar of the browser sessions.
type Handler struct {
	mux         *http.ServeMux
	sessions    *session.Manager
	registry    *nav.Registry
	help        *help.Resolver
	rateLimiter *ratelimit.RateLimiter
	brand       navbar.Brand
	loginPath   string
	logouts     singleflight.Group
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(sessions *session.Manager, registry *nav.Registry, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)

	h := &Handler{
		mux:         &http.ServeMux{},
		sessions:    sessions,
		registry:    registry,
		help:        opts.Help,
		rateLimiter: opts.RateLimiter,
		brand:       opts.Brand,
		loginPath:   opts.LoginPath,
	}

	limit := func(fn http.HandlerFunc) http.Handler {
		if h.rateLimiter == nil {
			return fn
		}

		return h.rateLimiter.Middleware(session.Key)(fn)
	}

	// Pages
	h.mux.HandleFunc("GET /{$}", h.serveIndex)
	h.mux.HandleFunc("GET /navbar", h.serveNavbar)
	h.mux.HandleFunc("POST /navbar/logout", h.handleNavbarLogout)

	// Authentication collaborator
	h.mux.HandleFunc("GET /login", h.serveLoginPage)
	h.mux.HandleFunc("POST /login", h.handleLogin)
	h.mux.HandleFunc("DELETE /login", h.handleLogout)

	// Navbar state
	h.mux.HandleFunc("GET /api/navbar", h.getNavbar)
	h.mux.HandleFunc("GET /api/navbar/user-details", h.getUserDetails)
	h.mux.HandleFunc("GET /api/navbar/placement", h.getPlacement)
	h.mux.HandleFunc("GET /api/help", h.getHelp)

	// Notification inbox
	h.mux.HandleFunc("GET /api/messages", h.listMessages)
	h.mux.Handle("POST /api/messages", limit(h.addMessage))
	h.mux.Handle("DELETE /api/messages", limit(h.clearMessages))
	h.mux.Handle("POST /api/messages/{id}/read", limit(h.markMessageRead))
	h.mux.HandleFunc("GET /api/messages/events", h.streamMessages)

	return h
}

var _ http.Handler = &Handler{}
