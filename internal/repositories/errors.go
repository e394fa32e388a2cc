package repositories

import "errors"

// ErrNotFound is returned when a lookup by id (or email scope) matches no
// row. Handlers map it to HTTP 404.
var ErrNotFound = errors.New("record not found")
