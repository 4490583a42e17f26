package http

import "errors"

// errBackendRead marks an interruption caused by the object store rather than
// the client.
var errBackendRead = errors.New("read object body")
