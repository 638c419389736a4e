// Package common defines shared sentinel errors and small helpers used across
// the polyglot server and console. Callers should use errors.Is to match these
// values; typed errors elsewhere in the module unwrap to them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrValidation         = errors.New("validation error")

	// Session flow errors.
	ErrInvalidTransition = errors.New("action not allowed on current page")
	ErrSessionNotFound   = errors.New("session not found")
	ErrEmptyInput        = errors.New("please provide valid input by speaking or typing")

	// Remote adapter errors.
	ErrRecognitionFailure  = errors.New("could not recognize speech")
	ErrTranslationService  = errors.New("translation service error")
	ErrSynthesisFailure    = errors.New("could not synthesize speech")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrUnknownLanguage     = errors.New("unknown language")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
