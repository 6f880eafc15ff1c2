package domain

import "errors"

// ErrNotFound is returned by repositories when a record does not exist.
// Adapters map it to a 404 at the transport boundary.
var ErrNotFound = errors.New("record not found")
