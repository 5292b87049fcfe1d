package directory

import "errors"

var (
	ErrUpstreamUnavailable = errors.New("directory upstream unavailable")
	ErrMalformedResource   = errors.New("malformed directory resource")
)
