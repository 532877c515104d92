// Package repository implements MySQL persistence for users and tokens.
// Repositories return the sentinel errors below plus wrapped driver
// errors; the service layer translates both into the apperr taxonomy, so
// nothing here is ever shown to an external caller directly.
package repository

import "errors"

// ErrNotFound is returned when a query matches no row. Services map it
// to apperr.KindNotFound or collapse it into a generic authentication
// failure, depending on the flow.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when an insert or update collides with the
// unique email index, or when the explicit pre-check finds the address
// in use. Both paths must surface identically: services map this to a
// validation error either way.
var ErrEmailTaken = errors.New("email already taken")

// ErrInvalidSort is returned when a sortBy pair references an unknown
// column or direction.
var ErrInvalidSort = errors.New("invalid sort option")
