package domain

import "errors"

// Transport errors - backend communication failures
var (
	// ErrUnauthorized indicates the backend rejected the session credential
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAuthFailed indicates a login attempt was rejected
	ErrAuthFailed = errors.New("authentication failed")

	// ErrBackendUnavailable indicates the backend could not be reached
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Configuration errors
var (
	// ErrNotLoaded indicates no configuration has been fetched yet
	ErrNotLoaded = errors.New("configuration not loaded")

	// ErrMalformedTemplate indicates the notification body template is not
	// valid JSON and cannot be encoded for the backend
	ErrMalformedTemplate = errors.New("malformed body template")

	// ErrConfigNotFound indicates the console settings file is missing
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates a settings or wire document is malformed
	ErrConfigInvalid = errors.New("invalid config")
)
