package stowfront

import (
	"io"
	"strings"
	"time"
)

// ProxyConfig is the process-wide proxy configuration. It is built once at
// startup and never mutated.
type ProxyConfig struct {
	Bucket    string
	KeyPrefix string
}

// NewProxyConfig returns a ProxyConfig with the key prefix stripped of leading
// and trailing slashes. An empty prefix means no prefix.
func NewProxyConfig(bucket, keyPrefix string) ProxyConfig {
	return ProxyConfig{
		Bucket:    bucket,
		KeyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

// ConditionalRequest is passed unmodified to the storage backend.
type ConditionalRequest struct {
	Bucket      string
	Key         string
	IfNoneMatch string
}

// ObjectMetadata holds the object attributes that are surfaced as HTTP headers.
// Nil pointers and empty strings mean the attribute is absent.
type ObjectMetadata struct {
	ETag               string
	Expires            *time.Time
	LastModified       *time.Time
	AcceptRanges       string
	ContentLanguage    string
	ContentDisposition string
	CacheControl       string
	ContentEncoding    string
	ContentLength      *int64
	ContentType        string
}

// Object is a successfully read object. The caller must close Body.
type Object struct {
	Metadata ObjectMetadata
	Body     io.ReadCloser
}

// ResultKind identifies which variant of Result is populated.
type ResultKind int

const (
	KindFound ResultKind = iota
	KindNotModified
	KindNotFound
	KindUpstreamError
)

func (k ResultKind) String() string {
	switch k {
	case KindFound:
		return "found"
	case KindNotModified:
		return "not_modified"
	case KindNotFound:
		return "not_found"
	case KindUpstreamError:
		return "upstream_error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one proxied read. Exactly one variant applies:
// Object is set only for KindFound and Err only for KindUpstreamError.
type Result struct {
	Kind   ResultKind
	Key    string
	Object Object
	Err    error
}
