package console

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/compass/internal/session"
	"github.com/bornholm/compass/internal/ui"
	"github.com/bornholm/compass/pkg/log"
	"github.com/pkg/errors"
)

const navbarLogoutURL = "/navbar/logout"

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	nb, _, _, err := h.navbar(r)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	query := parseNavbarQuery(r)
	view := nb.View(query.Path, query.ViewID)

	data := IndexTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: h.brand.Label,
			Language:  view.Language,
		},
		NavbarTemplateData: ui.NewNavbarTemplateData(view, navbarLogoutURL),
		Path:               query.Path,
		ViewID:             query.ViewID,
	}

	if err := templates.ExecuteTemplate(w, "index", data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		return
	}
}

func (h *Handler) serveNavbar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	nb, _, _, err := h.navbar(r)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	query := parseNavbarQuery(r)
	data := ui.NewNavbarTemplateData(nb.View(query.Path, query.ViewID), navbarLogoutURL)

	if err := templates.ExecuteTemplate(w, "navbar", data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		return
	}
}

func (h *Handler) serveLoginPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := session.ContextSession(ctx)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	data := LoginTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: h.brand.Label,
			Language:  requestLanguage(r),
		},
		LoggedIn: sess.LoggedIn(),
	}

	if err := templates.ExecuteTemplate(w, "login", data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		return
	}
}

// handleNavbarLogout runs the navbar logout and redirects to the route it
// navigated to.
func (h *Handler) handleNavbarLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	nb, _, ports, err := h.navbar(r)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	if err := nb.Logout(ctx); err != nil {
		if errors.Is(err, session.ErrNotLoggedIn) {
			http.Redirect(w, r, nb.LoginPath(), http.StatusSeeOther)
			return
		}

		h.handleError(w, r, errors.WithStack(err))
		return
	}

	ports.mutex.Lock()
	target := ports.navigated
	ports.mutex.Unlock()

	if target == "" {
		target = nb.LoginPath()
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "could not handle request", log.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
