package media

import "errors"

var (
	// ErrProberUnavailable indicates the media prober is not configured.
	ErrProberUnavailable = errors.New("media prober unavailable")
	// ErrStorageUnavailable indicates no asset storage backend is configured.
	ErrStorageUnavailable = errors.New("asset storage unavailable")
)
