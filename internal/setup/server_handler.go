package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/compass/internal/config"
	"github.com/bornholm/compass/internal/console"
	"github.com/bornholm/compass/pkg/log"
	"github.com/pkg/errors"

	sloghttp "github.com/samber/slog-http"
)

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	mux := &http.ServeMux{}

	slogMiddleware := sloghttp.New(slog.Default())

	resolver, err := NewHelpResolverFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	docsHandler, err := NewDocsHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mux.Handle(resolver.Root()+"/", slogMiddleware(docsHandler))

	sessions, err := NewSessionManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	registry, err := NewRegistryFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rateLimiter, err := NewRateLimiterFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	consoleHandler := console.NewHandler(
		sessions,
		registry,
		console.WithHelp(resolver),
		console.WithRateLimiter(rateLimiter),
		console.WithBrand(NewBrandFromConfig(conf)),
		console.WithLoginPath(string(conf.Navigation.LoginPath)),
	)

	mux.Handle("/", slogMiddleware(sessions.Middleware(consoleHandler)))

	slog.DebugContext(ctx, "handler ready",
		slog.Int("links", len(registry.Links())),
		log.ScrubbedURL("baseUrl", string(conf.HTTP.BaseURL)),
	)

	return mux, nil
}
