package services

import "errors"

var (
	// ErrNotFound means the requested content, user, or container is absent.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials means the admin login was rejected.
	ErrInvalidCredentials = errors.New("invalid admin credentials")
)
