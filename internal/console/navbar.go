package console

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/bornholm/compass/internal/session"
	"github.com/bornholm/compass/pkg/navbar"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// requestPorts collects the navbar side effects of a request so the handlers
// can turn them into responses.
type requestPorts struct {
	mutex     sync.Mutex
	navigated string
	modal     *navbar.Modal
	placement *navbar.Placement
}

// Navigate implements navbar.Router.
func (p *requestPorts) Navigate(path string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.navigated = path
}

// Open implements navbar.Modals.
func (p *requestPorts) Open(ctx context.Context, modal navbar.Modal) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.modal = &modal

	return nil
}

// Reposition implements navbar.Layout.
func (p *requestPorts) Reposition(placement navbar.Placement) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.placement = &placement
}

var (
	_ navbar.Router = &requestPorts{}
	_ navbar.Modals = &requestPorts{}
	_ navbar.Layout = &requestPorts{}
)

func (h *Handler) navbar(r *http.Request) (*navbar.Navbar, *session.Session, *requestPorts, error) {
	ctx := r.Context()

	sess, err := session.ContextSession(ctx)
	if err != nil {
		return nil, nil, nil, errors.WithStack(err)
	}

	ports := &requestPorts{}

	nb, err := navbar.New(navbar.Dependencies{
		Registry: h.registry,
		Inbox:    sess.Inbox,
		Help:     h.help,
		Auth:     sess,
		LogoutClient: navbar.LogoutFunc(func(ctx context.Context) error {
			return errors.WithStack(h.sessions.Logout(ctx, sess))
		}),
		Router:    ports,
		Localizer: navbar.LanguageFunc(func() string { return requestLanguage(r) }),
		Modals:    ports,
		Layout:    ports,
		Logger:    slog.Default(),
		Brand:     h.brand,
		LoginPath: h.loginPath,
		Logouts:   &h.logouts,
		LogoutKey: sess.ID,
	})
	if err != nil {
		return nil, nil, nil, errors.WithStack(err)
	}

	return nb, sess, ports, nil
}

// requestLanguage returns the "lang" query parameter or the preferred
// language of the Accept-Language header.
func requestLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}

	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return ""
	}

	return tags[0].String()
}

type navbarQuery struct {
	Path   string
	ViewID string
}

func parseNavbarQuery(r *http.Request) navbarQuery {
	query := r.URL.Query()
	return navbarQuery{
		Path:   query.Get("path"),
		ViewID: query.Get("view"),
	}
}
