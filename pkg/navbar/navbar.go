package navbar

import (
	"log/slog"

	"github.com/bornholm/compass/pkg/help"
	"github.com/bornholm/compass/pkg/inbox"
	"github.com/bornholm/compass/pkg/log"
	"github.com/bornholm/compass/pkg/nav"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

const DefaultLoginPath = "/login"

var DefaultBrand = Brand{URL: "#/entry", Label: "brand_cp"}

// DefaultLinks are the sections of the control center.
var DefaultLinks = []nav.Link{
	{URL: "#/apps", Label: "nav_apps", SublinkPrefixes: []string{"#/services/", "#/servicesmap"}},
	{URL: "#/pools", Label: "nav_pools", SublinkPrefixes: []string{"#/pools/"}},
	{URL: "#/hosts", Label: "nav_hosts", SublinkPrefixes: []string{"#/hosts/", "#/hostsmap"}},
	{URL: "#/logs", Label: "nav_logs", SublinkPrefixes: []string{}},
	{URL: "#/backuprestore", Label: "nav_backuprestore", SublinkPrefixes: []string{}},
}

type Brand struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

type LinkState struct {
	URL       string `json:"url"`
	Label     string `json:"label"`
	Active    bool   `json:"active"`
	ItemClass string `json:"itemClass"`
}

// View is the state rendered by the navigation bar for a given route.
type View struct {
	Brand       Brand                `json:"brand"`
	Links       []LinkState          `json:"links"`
	Messages    []inbox.Notification `json:"messages"`
	UnreadCount int                  `json:"unreadCount"`
	HelpURL     string               `json:"helpUrl"`
	Language    string               `json:"language"`
	LoggedIn    bool                 `json:"loggedIn"`
}

// Dependencies wires the navbar to its state and collaborators. Registry,
// Inbox and Auth are required.
type Dependencies struct {
	Registry *nav.Registry
	Inbox    *inbox.Inbox
	Help     *help.Resolver
	Auth     Authenticator

	LogoutClient LogoutClient
	Router       Router
	Localizer    Localizer
	Modals       Modals
	Layout       Layout
	Logger       *slog.Logger

	Brand     Brand
	LoginPath string

	// Logouts de-duplicates concurrent logouts sharing the same LogoutKey.
	Logouts   *singleflight.Group
	LogoutKey string
}

type Navbar struct {
	registry *nav.Registry
	inbox    *inbox.Inbox
	help     *help.Resolver
	auth     Authenticator

	logoutClient LogoutClient
	router       Router
	localizer    Localizer
	modals       Modals
	layout       Layout
	logger       *slog.Logger

	brand     Brand
	loginPath string

	logouts   *singleflight.Group
	logoutKey string
}

var (
	errRegistryRequired = errors.New("navbar: registry is required")
	errInboxRequired    = errors.New("navbar: inbox is required")
	errAuthRequired     = errors.New("navbar: authenticator is required")
)

func New(deps Dependencies) (*Navbar, error) {
	if deps.Registry == nil {
		return nil, errors.WithStack(errRegistryRequired)
	}
	if deps.Inbox == nil {
		return nil, errors.WithStack(errInboxRequired)
	}
	if deps.Auth == nil {
		return nil, errors.WithStack(errAuthRequired)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Brand == (Brand{}) {
		deps.Brand = DefaultBrand
	}
	if deps.LoginPath == "" {
		deps.LoginPath = DefaultLoginPath
	}
	if deps.Logouts == nil {
		deps.Logouts = &singleflight.Group{}
	}
	if deps.LogoutKey == "" {
		deps.LogoutKey = "logout"
	}

	return &Navbar{
		registry:     deps.Registry,
		inbox:        deps.Inbox,
		help:         deps.Help,
		auth:         deps.Auth,
		logoutClient: deps.LogoutClient,
		router:       deps.Router,
		localizer:    deps.Localizer,
		modals:       deps.Modals,
		layout:       deps.Layout,
		logger:       deps.Logger,
		brand:        deps.Brand,
		loginPath:    deps.LoginPath,
		logouts:      deps.Logouts,
		logoutKey:    deps.LogoutKey,
	}, nil
}

// View resolves the navbar state for the current path and view template.
func (n *Navbar) View(currentPath string, viewID string) View {
	lang := n.language()
	loggedIn := n.auth.LoggedIn()

	env := map[string]any{
		"loggedIn": loggedIn,
		"language": lang,
		"path":     n.registry.Normalize(currentPath),
	}

	visible := map[string]struct{}{}
	onRuleError := func(l nav.Link, err error) {
		n.logger.Error("could not evaluate link visibility rule", slog.String("link", l.URL), log.Error(err))
	}
	for l := range n.registry.Visible(env, onRuleError) {
		visible[l.URL] = struct{}{}
	}

	links := make([]LinkState, 0, len(visible))
	for _, r := range n.registry.ResolveActive(currentPath) {
		if _, ok := visible[r.Link.URL]; !ok {
			continue
		}

		links = append(links, LinkState{
			URL:       r.Link.URL,
			Label:     r.Link.Label,
			Active:    r.Active,
			ItemClass: r.ItemClass(),
		})
	}

	view := View{
		Brand:       n.brand,
		Links:       links,
		Messages:    n.inbox.Snapshot(),
		UnreadCount: n.inbox.UnreadCount(),
		Language:    lang,
		LoggedIn:    loggedIn,
	}

	if n.help != nil {
		view.HelpURL = n.HelpURL(viewID)
	}

	return view
}

// HelpURL returns the help document url for the given view, falling back on
// the default document when the view has none.
func (n *Navbar) HelpURL(viewID string) string {
	if n.help == nil {
		return ""
	}

	return n.help.ResolveOrDefault(viewID, n.language())
}

func (n *Navbar) MarkRead(id string) {
	n.inbox.MarkRead(id)
}

func (n *Navbar) ClearMessages() {
	n.inbox.ClearAll()
}

func (n *Navbar) language() string {
	if n.localizer == nil {
		return ""
	}

	return n.localizer.Language()
}
