// Package filesystem provides a local directory backend for stowfront.
// The directory plays the role of the bucket. ETags are SHA256 digests of the
// file contents and content types are detected from file extensions.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/sagarc03/stowfront"
)

// Store reads objects from a directory.
type Store struct {
	root *os.Root
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// Read opens the file named by req.Key. The bucket is ignored; the root
// directory is the only bucket. A matching If-None-Match yields
// stowfront.ErrNotModified, a missing file or a directory stowfront.ErrNotFound.
func (s *Store) Read(ctx context.Context, req stowfront.ConditionalRequest) (stowfront.Object, error) {
	if err := ctx.Err(); err != nil {
		return stowfront.Object{}, fmt.Errorf("%w: %w", stowfront.ErrTransport, err)
	}

	name := keyToPath(req.Key)
	if name == "" {
		return stowfront.Object{}, stowfront.ErrNotFound
	}

	f, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return stowfront.Object{}, stowfront.ErrNotFound
		}
		return stowfront.Object{}, fmt.Errorf("%w: open file: %w", stowfront.ErrTransport, err)
	}

	obj, err := s.describe(ctx, f, name, req.IfNoneMatch)
	if err != nil {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close file", "path", name, "err", closeErr)
		}
		return stowfront.Object{}, err
	}

	return obj, nil
}

func (s *Store) describe(ctx context.Context, f *os.File, name, ifNoneMatch string) (stowfront.Object, error) {
	info, err := f.Stat()
	if err != nil {
		return stowfront.Object{}, fmt.Errorf("%w: stat file: %w", stowfront.ErrTransport, err)
	}

	if info.IsDir() {
		return stowfront.Object{}, stowfront.ErrNotFound
	}

	etag, err := fileEtag(ctx, f)
	if err != nil {
		return stowfront.Object{}, fmt.Errorf("%w: hash file: %w", stowfront.ErrTransport, err)
	}

	if matchesETag(ifNoneMatch, etag) {
		return stowfront.Object{}, stowfront.ErrNotModified
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return stowfront.Object{}, fmt.Errorf("%w: rewind file: %w", stowfront.ErrTransport, err)
	}

	modified := info.ModTime()
	size := info.Size()

	return stowfront.Object{
		Metadata: stowfront.ObjectMetadata{
			ETag:          `"` + etag + `"`,
			LastModified:  &modified,
			ContentLength: &size,
			ContentType:   detectContentType(name),
		},
		Body: &ctxReadCloser{ctx: ctx, f: f},
	}, nil
}

// keyToPath turns a storage key into a path relative to the root.
func keyToPath(key string) string {
	return filepath.FromSlash(strings.TrimLeft(key, "/"))
}

func fileEtag(ctx context.Context, f fs.File) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, &ctxReader{ctx: ctx, r: f}); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// matchesETag compares a client validator with a bare hex etag. "*" matches
// any existing file.
func matchesETag(ifNoneMatch, etag string) bool {
	v := strings.TrimSpace(ifNoneMatch)
	if v == "" {
		return false
	}
	if v == "*" {
		return true
	}
	v = strings.TrimPrefix(v, "W/")
	return strings.Trim(v, `"`) == etag
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// ctxReadCloser stops yielding data once the request context is done.
type ctxReadCloser struct {
	ctx context.Context
	f   *os.File
}

func (r *ctxReadCloser) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.f.Read(p)
}

func (r *ctxReadCloser) Close() error {
	return r.f.Close()
}

func detectContentType(path string) string {
	ext := filepath.Ext(path)
	contentType := mime.TypeByExtension(ext)

	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}
