package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sagarc03/stowfront"
)

// streamBody relays body to w one chunk at a time, flushing after each chunk.
// At most one chunk of size bytes is held in memory. The returned error wraps
// stowfront.ErrStreamInterrupted; the caller is responsible for closing body.
func streamBody(w http.ResponseWriter, body io.Reader, size int) (int64, error) {
	rc := http.NewResponseController(w)

	var written int64
	for chunk, err := range stowfront.Chunks(body, size) {
		if err != nil {
			return written, fmt.Errorf("%w: %w: %w", stowfront.ErrStreamInterrupted, errBackendRead, err)
		}

		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("%w: write response: %w", stowfront.ErrStreamInterrupted, err)
		}

		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return written, fmt.Errorf("%w: flush response: %w", stowfront.ErrStreamInterrupted, err)
		}
	}

	return written, nil
}
