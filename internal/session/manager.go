package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/compass/internal/syncx"
	"github.com/bornholm/compass/pkg/inbox"
	"github.com/bornholm/compass/pkg/log"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

var ErrNotLoggedIn = errors.New("not logged in")

const cookieValueID = "id"

type Manager struct {
	cookies    sessions.Store
	name       string
	store      Store
	now        func() time.Time
	purgeHooks []PurgeHook
	sessions   syncx.Map[string, *Session]
}

// PurgeHook is called with the identifier of every purged session.
type PurgeHook func(ctx context.Context, id string)

type Options struct {
	Name       string
	Store      Store
	Now        func() time.Time
	PurgeHooks []PurgeHook
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Name: "compass_session",
		Now:  time.Now,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithName(name string) OptionFunc {
	return func(opts *Options) {
		opts.Name = name
	}
}

// WithStore persists the sessions login flag and inbox.
func WithStore(store Store) OptionFunc {
	return func(opts *Options) {
		opts.Store = store
	}
}

func WithNow(now func() time.Time) OptionFunc {
	return func(opts *Options) {
		opts.Now = now
	}
}

// WithPurgeHook registers a function releasing the resources associated with
// purged sessions.
func WithPurgeHook(hook PurgeHook) OptionFunc {
	return func(opts *Options) {
		opts.PurgeHooks = append(opts.PurgeHooks, hook)
	}
}

func NewManager(cookies sessions.Store, funcs ...OptionFunc) *Manager {
	opts := NewOptions(funcs...)
	return &Manager{
		cookies:    cookies,
		name:       opts.Name,
		store:      opts.Store,
		now:        opts.Now,
		purgeHooks: opts.PurgeHooks,
	}
}

// Get returns the session associated with the request, creating it (and its
// cookie) when needed.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) (*Session, error) {
	ctx := r.Context()

	cookie, err := m.cookies.Get(r, m.name)
	if err != nil {
		// Invalid cookies (rotated keys, tampering) start a new session
		slog.DebugContext(ctx, "could not decode session cookie", log.Error(errors.WithStack(err)))
	}

	if id, ok := cookie.Values[cookieValueID].(string); ok && id != "" {
		sess, err := m.find(ctx, id)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, errors.WithStack(err)
		}

		if sess != nil {
			sess.touch(m.now())
			return sess, nil
		}
	}

	id := xid.New().String()

	sess := m.open(ctx, id, &State{})

	if m.store != nil {
		if err := m.store.SaveSession(ctx, id, false); err != nil {
			m.sessions.Delete(id)
			return nil, errors.WithStack(err)
		}
	}

	cookie.Values[cookieValueID] = id

	if err := cookie.Save(r, w); err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "session created", slog.String("session", id))

	return sess, nil
}

// Logout is the server side of a logout: it fails with ErrNotLoggedIn when
// the session is not logged in, otherwise the session is logged out and its
// inbox reset.
func (m *Manager) Logout(ctx context.Context, sess *Session) error {
	if !sess.LoggedIn() {
		return errors.WithStack(ErrNotLoggedIn)
	}

	sess.Login(false)
	sess.Inbox.ClearAll()

	slog.DebugContext(ctx, "session logged out", slog.String("session", sess.ID))

	return nil
}

// Count returns the number of sessions held in memory.
func (m *Manager) Count() int {
	count := 0

	m.sessions.Range(func(id string, sess *Session) bool {
		count++
		return true
	})

	return count
}

// Purge forgets the sessions not seen since the given time, in memory and in
// the store.
func (m *Manager) Purge(ctx context.Context, before time.Time) error {
	purged := make([]string, 0)
	alive := make([]*Session, 0)

	m.sessions.Range(func(id string, sess *Session) bool {
		if !sess.LastSeen().Before(before) {
			alive = append(alive, sess)
			return true
		}

		if _, loaded := m.sessions.LoadAndDelete(id); loaded {
			purged = append(purged, id)
		}

		return true
	})

	for _, id := range purged {
		for _, hook := range m.purgeHooks {
			hook(ctx, id)
		}
	}

	if m.store != nil {
		for _, id := range purged {
			if err := m.store.DeleteSession(ctx, id); err != nil {
				return errors.WithStack(err)
			}
		}

		// Refresh the sessions still in use before purging the store
		for _, sess := range alive {
			if err := m.store.SaveSession(ctx, sess.ID, sess.LoggedIn()); err != nil {
				return errors.WithStack(err)
			}
		}

		if err := m.store.PurgeSessions(ctx, before); err != nil {
			return errors.WithStack(err)
		}
	}

	slog.DebugContext(ctx, "sessions purged", slog.Int("purged", len(purged)))

	return nil
}

// RunPurge periodically purges the sessions idle for longer than maxAge,
// until the context is canceled.
func (m *Manager) RunPurge(ctx context.Context, interval time.Duration, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.Purge(ctx, m.now().Add(-maxAge)); err != nil {
				slog.ErrorContext(ctx, "could not purge sessions", log.Error(errors.WithStack(err)))
			}
		}
	}
}

func (m *Manager) find(ctx context.Context, id string) (*Session, error) {
	if sess, exists := m.sessions.Load(id); exists {
		return sess, nil
	}

	if m.store == nil {
		return nil, errors.WithStack(ErrNotFound)
	}

	state, err := m.store.LoadSession(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sess := m.open(ctx, id, state)

	slog.DebugContext(ctx, "session restored", slog.String("session", id))

	return sess, nil
}

func (m *Manager) open(ctx context.Context, id string, state *State) *Session {
	sess := &Session{
		ID:       id,
		Inbox:    inbox.New(inbox.WithNotifications(state.Notifications...)),
		loggedIn: state.LoggedIn,
	}

	sess.touch(m.now())

	if m.store != nil {
		ctx = context.WithoutCancel(ctx)

		sess.Inbox.Subscribe(m.store.InboxListener(ctx, id))

		sess.onLogin = func(s *Session, loggedIn bool) {
			if err := m.store.SaveSession(ctx, s.ID, loggedIn); err != nil {
				slog.ErrorContext(ctx, "could not persist session", slog.String("session", s.ID), log.Error(errors.WithStack(err)))
			}
		}
	}

	actual, _ := m.sessions.LoadOrStore(id, sess)

	return actual
}
