package stowfront

import "errors"

var (
	// ErrNotFound is returned when no object exists at the key
	ErrNotFound = errors.New("not found")
	// ErrNotModified is returned when the object's validator matches If-None-Match
	ErrNotModified = errors.New("not modified")
	// ErrTransport wraps every backend failure that is neither of the above
	ErrTransport = errors.New("transport failure")
	// ErrStreamInterrupted is returned when a body transfer stops midway
	ErrStreamInterrupted = errors.New("stream interrupted")
)
