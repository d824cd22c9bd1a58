// Package domain defines domain-level errors for the identity feature.
package domain

import "errors"

// Classified failures of credential validation. The request gate maps
// each of these onto an HTTP status; anything else is treated as an
// internal error.
var (
	// ErrMissingCredential indicates the request carried no Authorization header.
	ErrMissingCredential = errors.New("authorization header missing")

	// ErrInvalidToken indicates the identity service rejected the credential
	// (non-success status, or a response without a true validity flag).
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrAuthServiceUnavailable indicates the identity service could not be
	// reached or did not answer within the timeout.
	ErrAuthServiceUnavailable = errors.New("authentication service unavailable")
)
