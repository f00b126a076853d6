package repositories

import "errors"

// ErrNotFound is returned by every repository when the requested record
// does not exist. Callers match it with errors.Is.
var ErrNotFound = errors.New("record not found")
