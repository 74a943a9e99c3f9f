package service

import "errors"

// Domain errors. Handlers map these to HTTP responses; anything else is an
// unexpected fault.
var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrUserNotFound    = errors.New("user not found")

	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotSaved       = errors.New("recipe not found in saved recipes")
	ErrAlreadySaved   = errors.New("recipe already saved by user")

	ErrPreferencesExist    = errors.New("preferences already exist for user")
	ErrPreferencesNotFound = errors.New("preferences not found")

	// ErrNoResults means the generator answered but produced nothing usable.
	ErrNoResults = errors.New("generator returned no usable result")
	// ErrGeneratorUnavailable means the generator could not be reached or
	// answered with an error status.
	ErrGeneratorUnavailable = errors.New("recipe generator unavailable")
)
