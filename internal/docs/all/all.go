// Package all registers every help document source.
package all

import (
	_ "github.com/bornholm/compass/internal/docs/local"
	_ "github.com/bornholm/compass/internal/docs/s3"
)
