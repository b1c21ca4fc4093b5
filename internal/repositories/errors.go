package repositories

import "errors"

// ErrNotFound is returned by repositories when a record does not exist.
// Callers distinguish absence from genuine store failures with errors.Is.
var ErrNotFound = errors.New("record not found")
