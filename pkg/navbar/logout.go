package navbar

import (
	"context"

	"github.com/bornholm/compass/pkg/log"
	"github.com/pkg/errors"
)

var ErrLogoutFailed = errors.New("logout failed")

type LogoutError struct {
	Err error
}

func (e *LogoutError) Error() string {
	return "logout failed: " + e.Err.Error()
}

func (e *LogoutError) Unwrap() error {
	return e.Err
}

func (e *LogoutError) Is(target error) bool {
	return target == ErrLogoutFailed
}

// Logout terminates the session on the server. The local state (auth flag,
// inbox, route) only changes once the server confirmed the logout: on
// failure the error is logged and returned, and the navbar stays logged in.
//
// Concurrent calls sharing the same logout key are merged into one.
func (n *Navbar) Logout(ctx context.Context) error {
	_, err, _ := n.logouts.Do(n.logoutKey, func() (any, error) {
		if n.logoutClient == nil {
			return nil, errors.New("no logout client configured")
		}

		if err := n.logoutClient.Logout(ctx); err != nil {
			return nil, errors.WithStack(err)
		}

		n.auth.Login(false)
		n.inbox.ClearAll()

		if n.router != nil {
			n.router.Navigate(n.loginPath)
		}

		return nil, nil
	})
	if err != nil {
		err = &LogoutError{Err: err}
		n.logger.ErrorContext(ctx, "could not log out", log.Error(err))
		return errors.WithStack(err)
	}

	return nil
}

func (n *Navbar) LoginPath() string {
	return n.loginPath
}
