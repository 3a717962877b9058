package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bornholm/compass/pkg/inbox"
	"github.com/bornholm/compass/pkg/navbar"
)

// Session is the server side state of a browser session: its login flag and
// its notification inbox.
type Session struct {
	ID    string
	Inbox *inbox.Inbox

	mutex    sync.RWMutex
	loggedIn bool

	lastSeen atomic.Int64

	onLogin func(s *Session, loggedIn bool)
}

// Login implements navbar.Authenticator.
func (s *Session) Login(loggedIn bool) {
	s.mutex.Lock()
	changed := s.loggedIn != loggedIn
	s.loggedIn = loggedIn
	s.mutex.Unlock()

	if changed && s.onLogin != nil {
		s.onLogin(s, loggedIn)
	}
}

// LoggedIn implements navbar.Authenticator.
func (s *Session) LoggedIn() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.loggedIn
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

var _ navbar.Authenticator = &Session{}
