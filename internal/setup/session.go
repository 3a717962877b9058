package setup

import (
	"context"
	"crypto/rand"
	"net/http"
	"time"

	"github.com/bornholm/compass/internal/config"
	"github.com/bornholm/compass/internal/session"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

var NewSessionManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*session.Manager, error) {
	keyPairs := make([][]byte, 0)
	if len(conf.HTTP.Session.Keys) == 0 {
		key, err := getRandomBytes(32)
		if err != nil {
			return nil, errors.Wrap(err, "could not generate cookie signing key")
		}

		keyPairs = append(keyPairs, key)
	} else {
		for _, k := range conf.HTTP.Session.Keys {
			keyPairs = append(keyPairs, []byte(k))
		}
	}

	maxAge := time.Duration(conf.HTTP.Session.Cookie.MaxAge)

	cookieStore := sessions.NewCookieStore(keyPairs...)

	cookieStore.MaxAge(int(maxAge.Seconds()))
	cookieStore.Options.Path = string(conf.HTTP.Session.Cookie.Path)
	cookieStore.Options.HttpOnly = bool(conf.HTTP.Session.Cookie.HTTPOnly)
	cookieStore.Options.Secure = bool(conf.HTTP.Session.Cookie.Secure)
	cookieStore.Options.SameSite = http.SameSiteLaxMode

	store, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rateLimiter, err := NewRateLimiterFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	manager := session.NewManager(
		cookieStore,
		session.WithName(string(conf.HTTP.Session.Name)),
		session.WithStore(&sessionStore{store: store}),
		session.WithPurgeHook(func(ctx context.Context, id string) {
			rateLimiter.Forget(id)
		}),
	)

	if interval := time.Duration(conf.HTTP.Session.PurgeInterval); interval > 0 && maxAge > 0 {
		go manager.RunPurge(ctx, interval, maxAge)
	}

	return manager, nil
})

func getRandomBytes(n int) ([]byte, error) {
	data := make([]byte, n)

	read, err := rand.Read(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if read != n {
		return nil, errors.Errorf("could not read %d bytes", n)
	}

	return data, nil
}
