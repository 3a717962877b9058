package authclient

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

var ErrLogoutFailed = errors.New("logout failed")

const maxDrainSize = 64 << 10

// Client is the HTTP side of the authentication collaborator.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

type Options struct {
	HTTPClient *http.Client
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		HTTPClient: http.DefaultClient,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithHTTPClient(client *http.Client) OptionFunc {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

func New(baseURL string, funcs ...OptionFunc) (*Client, error) {
	opts := NewOptions(funcs...)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse base url '%s'", baseURL)
	}

	return &Client{
		baseURL:    u,
		httpClient: opts.HTTPClient,
	}, nil
}

// Logout issues "DELETE /login" without body. Any 2xx response is a success,
// every other outcome is reported as ErrLogoutFailed.
func (c *Client) Logout(ctx context.Context) error {
	endpoint := c.baseURL.JoinPath("login")

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint.String(), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(ErrLogoutFailed, "%s", err.Error())
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return errors.Wrapf(ErrLogoutFailed, "unexpected response status '%s'", res.Status)
	}

	// The logout is confirmed: draining the body only lets the connection be
	// reused, its errors are irrelevant
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxDrainSize))

	return nil
}
