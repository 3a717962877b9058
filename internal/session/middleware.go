package session

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/compass/pkg/log"
	"github.com/pkg/errors"
)

// Middleware attaches the request session to its context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess, err := m.Get(w, r)
		if err != nil {
			slog.ErrorContext(ctx, "could not retrieve session", log.Error(errors.WithStack(err)))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		ctx = WithContextSession(ctx, sess)
		ctx = log.WithAttrs(ctx, slog.String("session", sess.ID))

		next.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}

// Key returns the session identifier of the request, for per-session rate
// limiting.
func Key(r *http.Request) (string, error) {
	sess, err := ContextSession(r.Context())
	if err != nil {
		return "", errors.WithStack(err)
	}

	return sess.ID, nil
}
