package s3store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithy "github.com/aws/smithy-go"

	"github.com/sagarc03/stowfront"
)

// API is the subset of the S3 client used by Store.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Store reads objects from an S3-compatible bucket.
type Store struct {
	api API
}

// New creates a Store backed by the given client. The client is shared by all
// requests and must be safe for concurrent use, which *s3.Client is.
func New(api API) *Store {
	return &Store{api: api}
}

// Read performs one conditional GetObject. A single leading "/" on the key
// is dropped, so "/index.html" addresses the object "index.html".
func (s *Store) Read(ctx context.Context, req stowfront.ConditionalRequest) (stowfront.Object, error) {
	ctx, cancel := context.WithCancel(ctx)

	input := &s3.GetObjectInput{
		Bucket: aws.String(req.Bucket),
		Key:    aws.String(strings.TrimPrefix(req.Key, "/")),
	}
	if req.IfNoneMatch != "" {
		input.IfNoneMatch = aws.String(req.IfNoneMatch)
	}

	out, err := s.api.GetObject(ctx, input)
	if err != nil {
		cancel()
		return stowfront.Object{}, classify(req.Key, err)
	}

	return stowfront.Object{
		Metadata: metadataFromOutput(out),
		Body:     &cancelReadCloser{ReadCloser: out.Body, cancel: cancel},
	}, nil
}

func classify(key string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: get object %q: %w", stowfront.ErrTransport, key, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotModified":
			return stowfront.ErrNotModified
		case "NoSuchKey", "NotFound":
			return stowfront.ErrNotFound
		case "NoSuchBucket":
			return fmt.Errorf("%w: get object %q: %w", stowfront.ErrTransport, key, err)
		}
	}

	if status, ok := httpStatusCode(err); ok {
		switch status {
		case http.StatusNotModified:
			return stowfront.ErrNotModified
		case http.StatusNotFound:
			return stowfront.ErrNotFound
		}
	}

	return fmt.Errorf("%w: get object %q: %w", stowfront.ErrTransport, key, err)
}

func httpStatusCode(err error) (int, bool) {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode(), true
	}
	var statusErr interface{ HTTPStatusCode() int }
	if errors.As(err, &statusErr) {
		return statusErr.HTTPStatusCode(), true
	}
	return 0, false
}

func metadataFromOutput(out *s3.GetObjectOutput) stowfront.ObjectMetadata {
	return stowfront.ObjectMetadata{
		ETag:               aws.ToString(out.ETag),
		Expires:            expiresFromOutput(out),
		LastModified:       out.LastModified,
		AcceptRanges:       aws.ToString(out.AcceptRanges),
		ContentLanguage:    aws.ToString(out.ContentLanguage),
		ContentDisposition: aws.ToString(out.ContentDisposition),
		CacheControl:       aws.ToString(out.CacheControl),
		ContentEncoding:    aws.ToString(out.ContentEncoding),
		ContentLength:      out.ContentLength,
		ContentType:        aws.ToString(out.ContentType),
	}
}

// expiresFromOutput prefers the raw header since the SDK drops values it
// cannot parse from the typed field.
func expiresFromOutput(out *s3.GetObjectOutput) *time.Time {
	if raw := aws.ToString(out.ExpiresString); raw != "" {
		t, err := http.ParseTime(raw)
		if err == nil {
			return &t
		}
		slog.Warn("unparseable expires value from object store", "value", raw, "err", err)
	}
	//nolint:staticcheck // fallback for endpoints that only populate the typed field
	return out.Expires
}

// cancelReadCloser releases the request context once the body is closed, so an
// abandoned stream stops the underlying backend read.
type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
