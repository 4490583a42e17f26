package stowfront

import (
	"errors"
	"io"
	"iter"
)

// DefaultChunkSize is the buffer size used to relay object bodies.
const DefaultChunkSize = 32 * 1024

// Chunks returns a lazy, single-use sequence over the bytes of r.
//
// Every yielded slice aliases one buffer of the given size and is only valid until
// the next iteration. The sequence ends at io.EOF; any other read error is yielded
// once as the final element. Stopping the iteration early leaves r unread, closing
// it is the caller's job.
func Chunks(r io.Reader, size int) iter.Seq2[[]byte, error] {
	if size <= 0 {
		size = DefaultChunkSize
	}

	return func(yield func([]byte, error) bool) {
		buf := make([]byte, size)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				if !yield(buf[:n], nil) {
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(nil, err)
				}
				return
			}
		}
	}
}
