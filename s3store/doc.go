// Package s3store provides an S3-compatible object storage backend for stowfront.
//
// The Store issues a single GetObject per read, forwarding If-None-Match as the
// native conditional parameter, and classifies every failure into the sentinel
// errors of the stowfront package:
//
//   - HTTP 304 or a NotModified error code: stowfront.ErrNotModified
//   - HTTP 404 with NoSuchKey/NotFound: stowfront.ErrNotFound
//   - anything else (network errors, 5xx, NoSuchBucket, malformed responses):
//     stowfront.ErrTransport wrapping the SDK error
//
// SDK retries are disabled by NewClient so that a request never fans out into
// several backend calls.
//
// # Usage
//
//	client, err := s3store.NewClient(ctx, s3store.Config{
//	    Region:       "us-east-1",
//	    Endpoint:     "http://localhost:9000",
//	    UsePathStyle: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := s3store.New(client)
package s3store
