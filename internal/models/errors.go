package models

import "errors"

// Domain errors shared between repository, service, and HTTP layers.
// Handlers map these to status codes with errors.Is.
var (
	// ErrUsernameTaken means a signup collided with an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrPasswordEmpty rejects blank passwords before hashing; binding
	// catches the missing field, this catches whitespace-only values.
	ErrPasswordEmpty = errors.New("password is empty")

	// ErrInvalidCredentials covers both unknown username and wrong
	// password. The two cases are deliberately indistinguishable so a
	// caller cannot enumerate which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken means a bearer token is malformed, has a bad
	// signature, or is expired.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTaskNotFound is returned by read, update, and delete alike when
	// no task has the given id.
	ErrTaskNotFound = errors.New("task not found")
)
