package setup

import (
	"context"
	"sync"

	"github.com/bornholm/compass/internal/config"
	"github.com/pkg/errors"
)

// createFromConfigOnce memoizes the first result of the given factory, so
// that services shared by several handlers are created only once.
func createFromConfigOnce[T any](factory func(ctx context.Context, conf *config.Config) (T, error)) func(ctx context.Context, conf *config.Config) (T, error) {
	var (
		once   sync.Once
		result T
		err    error
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		once.Do(func() {
			result, err = factory(ctx, conf)
		})
		if err != nil {
			return *new(T), errors.WithStack(err)
		}

		return result, nil
	}
}
