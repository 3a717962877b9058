package navbar

import "context"

// Router is the routing collaborator.
type Router interface {
	Navigate(path string)
}

// Authenticator is the client-side authentication state.
type Authenticator interface {
	Login(loggedIn bool)
	LoggedIn() bool
}

// LogoutClient terminates the session on the server.
type LogoutClient interface {
	Logout(ctx context.Context) error
}

// Localizer exposes the current language code.
type Localizer interface {
	Language() string
}

// Modals opens modal dialogs.
type Modals interface {
	Open(ctx context.Context, modal Modal) error
}

// Layout applies placements computed by the navbar to the presentation layer.
type Layout interface {
	Reposition(placement Placement)
}

type RouterFunc func(path string)

func (fn RouterFunc) Navigate(path string) {
	fn(path)
}

type LogoutFunc func(ctx context.Context) error

func (fn LogoutFunc) Logout(ctx context.Context) error {
	return fn(ctx)
}

type LanguageFunc func() string

func (fn LanguageFunc) Language() string {
	return fn()
}

type LayoutFunc func(placement Placement)

func (fn LayoutFunc) Reposition(placement Placement) {
	fn(placement)
}
