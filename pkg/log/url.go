package log

import (
	"log/slog"
	"net/url"
	"slices"
	"strings"
)

const scrubbed = "xxx"

// sensitiveParams are query parameters carrying credentials, ie. in presigned
// S3 urls.
var sensitiveParams = []string{
	"x-amz-credential",
	"x-amz-signature",
	"x-amz-security-token",
	"token",
	"secret",
	"password",
}

// ScrubbedURL returns an attribute holding the url without its credentials.
// Unparsable values, ie. "host:port" endpoints, are logged as is.
func ScrubbedURL(name string, rawURL string) slog.Attr {
	u, err := url.Parse(rawURL)
	if err != nil {
		return slog.String(name, rawURL)
	}

	scrubbedURL := *u

	if u.User != nil {
		scrubbedURL.User = url.UserPassword(scrubbed, scrubbed)
	}

	if u.RawQuery != "" {
		query := u.Query()
		for key := range query {
			if slices.Contains(sensitiveParams, strings.ToLower(key)) {
				query.Set(key, scrubbed)
			}
		}

		scrubbedURL.RawQuery = query.Encode()
	}

	return slog.String(name, scrubbedURL.String())
}
