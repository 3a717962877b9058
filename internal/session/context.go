package session

import (
	"context"

	"github.com/pkg/errors"
)

type contextKey string

const contextKeySession contextKey = "session"

func ContextSession(ctx context.Context) (*Session, error) {
	sess, ok := ctx.Value(contextKeySession).(*Session)
	if !ok {
		return nil, errors.New("no session in context")
	}

	return sess, nil
}

func WithContextSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKeySession, sess)
}
