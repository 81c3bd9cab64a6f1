package repository

import "errors"

// ErrNotFound is returned by every repository when the requested record does
// not exist. Services map it to their own taxonomy; anything else from a
// repository is treated as an opaque store failure.
var ErrNotFound = errors.New("not found")
