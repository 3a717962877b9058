package setup

import (
	"context"

	"github.com/bornholm/compass/internal/config"
	"github.com/bornholm/compass/internal/ratelimit"
	"golang.org/x/time/rate"
)

var NewRateLimiterFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*ratelimit.RateLimiter, error) {
	return ratelimit.New(rate.Limit(conf.RateLimit.Rate), int(conf.RateLimit.Burst)), nil
})
