// Package repository implements the persistence layer on top of MongoDB.
// Sentinel errors declared here let handlers distinguish failure scenarios
// without inspecting driver error types: ErrNotFound maps to HTTP 404 and
// the two duplicate errors map to HTTP 400 during registration.
package repository

import "errors"

// ErrNotFound is returned when a document lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert collides with the unique index
// on users.email.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when an insert collides with the unique
// index on users.username.
var ErrUsernameExists = errors.New("username already exists")
