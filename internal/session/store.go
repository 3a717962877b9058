package session

import (
	"context"
	"time"

	"github.com/bornholm/compass/pkg/inbox"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("session not found")

// State is the persisted part of a session.
type State struct {
	LoggedIn      bool
	Notifications []inbox.Notification
}

type Store interface {
	// LoadSession returns ErrNotFound when the session is unknown.
	LoadSession(ctx context.Context, id string) (*State, error)
	SaveSession(ctx context.Context, id string, loggedIn bool) error
	DeleteSession(ctx context.Context, id string) error
	PurgeSessions(ctx context.Context, before time.Time) error
	InboxListener(ctx context.Context, id string) inbox.Listener
}
