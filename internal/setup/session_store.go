package setup

import (
	"context"
	"time"

	"github.com/bornholm/compass/internal/session"
	"github.com/bornholm/compass/internal/store"
	"github.com/bornholm/compass/pkg/inbox"
	"github.com/pkg/errors"
)

// sessionStore persists the sessions in the sqlite store.
type sessionStore struct {
	store *store.Store
}

// LoadSession implements session.Store.
func (s *sessionStore) LoadSession(ctx context.Context, id string) (*session.State, error) {
	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.WithStack(session.ErrNotFound)
		}

		return nil, errors.WithStack(err)
	}

	notifications, err := s.store.GetNotifications(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &session.State{
		LoggedIn:      sess.LoggedIn,
		Notifications: notifications,
	}, nil
}

// SaveSession implements session.Store.
func (s *sessionStore) SaveSession(ctx context.Context, id string, loggedIn bool) error {
	if _, err := s.store.SaveSession(ctx, id, loggedIn); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteSession implements session.Store.
func (s *sessionStore) DeleteSession(ctx context.Context, id string) error {
	return errors.WithStack(s.store.DeleteSession(ctx, id))
}

// PurgeSessions implements session.Store.
func (s *sessionStore) PurgeSessions(ctx context.Context, before time.Time) error {
	if _, err := s.store.DeleteSessionsBefore(ctx, before); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// InboxListener implements session.Store.
func (s *sessionStore) InboxListener(ctx context.Context, id string) inbox.Listener {
	return s.store.InboxListener(ctx, id)
}

var _ session.Store = &sessionStore{}
