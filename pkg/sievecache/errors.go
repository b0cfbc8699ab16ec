package sievecache

import "errors"

// ErrInvalidCapacity is returned by New and NewConcurrent when the
// requested capacity is less than 1. Construction is the only place this
// package surfaces an error; Get and Set are infallible.
var ErrInvalidCapacity = errors.New("sievecache: capacity must be >= 1")
