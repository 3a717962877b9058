package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/compass/internal/config"
	"github.com/bornholm/compass/internal/store"
	"github.com/pkg/errors"
)

var NewStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*store.Store, error) {
	store := store.NewStore(string(conf.Store.Path))

	if err := store.HealthCheck(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "store ready", slog.String("path", string(conf.Store.Path)))

	return store, nil
})
