package setup

import (
	"context"

	"github.com/bornholm/compass/internal/config"
	"github.com/bornholm/compass/internal/docs"
	"github.com/bornholm/compass/pkg/help"
	"github.com/pkg/errors"
)

func NewHelpResolverFromConfig(ctx context.Context, conf *config.Config) (*help.Resolver, error) {
	resolver, err := help.NewResolver(
		help.WithRoot(string(conf.Help.Root)),
		help.WithDefaultLanguage(string(conf.Help.DefaultLanguage)),
		help.WithDefaultDocument(string(conf.Help.DefaultDocument)),
		help.WithLanguages(conf.Help.Languages...),
		help.WithMapping(conf.Help.Mapping),
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return resolver, nil
}

// NewDocsHandlerFromConfig serves the help documents under the root validated
// by the help resolver.
func NewDocsHandlerFromConfig(ctx context.Context, conf *config.Config) (*docs.Handler, error) {
	resolver, err := NewHelpResolverFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var options any
	if conf.Docs.Options != nil {
		options = conf.Docs.Options.Data
	}

	source, err := docs.New(docs.Type(conf.Docs.Type), options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return docs.NewHandler(resolver.Root(), source), nil
}
