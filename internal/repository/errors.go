package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row, and by Close
// when the target session does not exist or is already closed.
var ErrNotFound = errors.New("not found")
