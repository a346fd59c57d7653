// Path: internal/domain/errors.go
package domain

import "errors"

var (
	// ErrConfiguration means a required setting is missing. Fatal at startup.
	ErrConfiguration = errors.New("configuration error")
	// ErrStorageUnavailable means the document store could not be reached or queried.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrMalformedUpstreamResponse means a listing response had no articles array.
	ErrMalformedUpstreamResponse = errors.New("malformed upstream response")
	// ErrNetworkFailure means an outbound request could not be completed.
	ErrNetworkFailure = errors.New("network failure")
)
