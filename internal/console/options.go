package console

import (
	"github.com/bornholm/compass/internal/ratelimit"
	"github.com/bornholm/compass/pkg/help"
	"github.com/bornholm/compass/pkg/navbar"
)

type Options struct {
	Help        *help.Resolver
	RateLimiter *ratelimit.RateLimiter
	Brand       navbar.Brand
	LoginPath   string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Brand:     navbar.DefaultBrand,
		LoginPath: navbar.DefaultLoginPath,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithHelp(resolver *help.Resolver) OptionFunc {
	return func(opts *Options) {
		opts.Help = resolver
	}
}

// WithRateLimiter limits the inbox mutations of each session.
func WithRateLimiter(limiter *ratelimit.RateLimiter) OptionFunc {
	return func(opts *Options) {
		opts.RateLimiter = limiter
	}
}

func WithBrand(brand navbar.Brand) OptionFunc {
	return func(opts *Options) {
		opts.Brand = brand
	}
}

func WithLoginPath(path string) OptionFunc {
	return func(opts *Options) {
		opts.LoginPath = path
	}
}
