package console

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/bornholm/compass/internal/session"
	"github.com/bornholm/compass/pkg/log"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

func (h *Handler) getNavbar(w http.ResponseWriter, r *http.Request) {
	nb, _, _, err := h.navbar(r)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	query := parseNavbarQuery(r)

	writeJSON(w, r, http.StatusOK, nb.View(query.Path, query.ViewID))
}

type userDetails struct {
	Session  string `json:"session"`
	LoggedIn bool   `json:"loggedIn"`
}

func (h *Handler) getUserDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	nb, sess, ports, err := h.navbar(r)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	model := userDetails{
		Session:  sess.ID,
		LoggedIn: sess.LoggedIn(),
	}

	if err := nb.ShowUserDetails(ctx, model); err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	ports.mutex.Lock()
	modal := ports.modal
	ports.mutex.Unlock()

	writeJSON(w, r, http.StatusOK, modal)
}

func (h *Handler) getPlacement(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	navWidth, err := strconv.ParseFloat(query.Get("navWidth"), 64)
	if err != nil {
		http.Error(w, "invalid navWidth", http.StatusBadRequest)
		return
	}

	windowWidth, err := strconv.ParseFloat(query.Get("windowWidth"), 64)
	if err != nil {
		http.Error(w, "invalid windowWidth", http.StatusBadRequest)
		return
	}

	nb, _, _, err := h.navbar(r)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, nb.Reposition(navWidth, windowWidth))
}

type helpResponse struct {
	URL string `json:"url"`
}

func (h *Handler) getHelp(w http.ResponseWriter, r *http.Request) {
	nb, _, _, err := h.navbar(r)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, helpResponse{URL: nb.HelpURL(r.URL.Query().Get("view"))})
}

// handleLogin is a minimal authentication collaborator: it flags the session
// as logged in without checking any credential.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess, err := session.ContextSession(r.Context())
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	sess.Login(true)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleLogout is the server side of the navbar logout.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := session.ContextSession(ctx)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	if err := h.sessions.Logout(ctx, sess); err != nil {
		if errors.Is(err, session.ErrNotLoggedIn) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		h.handleError(w, r, errors.WithStack(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", log.Error(errors.WithStack(err)))
	}
}
