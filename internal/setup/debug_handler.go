package setup

import (
	"context"
	"expvar"
	"net/http"

	"github.com/bornholm/compass/internal/config"
	"github.com/bornholm/compass/internal/pprof"
	"github.com/pkg/errors"
)

func NewDebugHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	sessions, err := NewSessionManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	store, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	handler := pprof.NewHandler(
		"/debug/pprof",
		pprof.WithVar("sessions", expvar.Func(func() any {
			return sessions.Count()
		})),
		pprof.WithVar("storedSessions", expvar.Func(func() any {
			count, err := store.CountSessions(ctx)
			if err != nil {
				return err.Error()
			}

			return count
		})),
	)

	return handler, nil
}
