// Package common defines shared constants and sentinel errors used across
// the pastebin client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// ErrNotFound covers both "does not exist" and "exists but not visible
	// to the caller". The two cases are never distinguished.
	ErrNotFound = errors.New("not found or no access")

	// ErrUnauthorized indicates missing or invalid credentials, either
	// detected locally or reported by the backend.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRejected indicates the backend explicitly refused the request.
	ErrRejected = errors.New("request rejected")

	// ErrUnavailable indicates a transport failure: no usable response.
	ErrUnavailable = errors.New("server unavailable")

	// ErrConfig indicates a fatal startup configuration problem.
	ErrConfig = errors.New("invalid configuration")
)
