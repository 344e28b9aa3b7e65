// Package errs defines the error kinds shared by the report pipeline.
// Callers wrap them with fmt.Errorf("...: %w", ...) and match with errors.Is.
package errs

import "errors"

var (
	// ErrNetwork indicates the remote service could not be reached at all.
	ErrNetwork = errors.New("network error")

	// ErrUpstream indicates the remote service rejected the request or
	// returned something we could not use.
	ErrUpstream = errors.New("upstream error")

	// ErrAuth indicates an OAuth failure: missing, expired or revoked
	// credentials.
	ErrAuth = errors.New("authentication error")

	// ErrNotFound indicates an unknown city or country code.
	ErrNotFound = errors.New("not found")

	// ErrConfig indicates a required setting is missing or unparsable.
	ErrConfig = errors.New("configuration error")
)
