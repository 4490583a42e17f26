package stowfront

import (
	"context"
	"errors"
	"fmt"
)

// ObjectReader defines the conditional read consumed from a storage backend.
// Implementations must be safe for concurrent use.
type ObjectReader interface {
	// Read fetches one object, honoring req.IfNoneMatch when it is set.
	//
	// Parameters:
	//   - ctx: Context for cancellation; cancelling it also stops an open body
	//   - req: Bucket, key and optional validator
	//
	// Returns:
	//   - Object: Metadata and body when the object exists and differs from the validator
	//   - error: ErrNotModified when the validator matches, ErrNotFound when the key is
	//     absent, or an error wrapping ErrTransport for anything else
	//
	// Exactly one backend call is made; implementations do not retry.
	Read(ctx context.Context, req ConditionalRequest) (Object, error)
}

// ProxyService resolves request paths and reads the matching objects.
type ProxyService struct {
	config ProxyConfig
	reader ObjectReader
}

// NewProxyService creates a ProxyService. The config is copied and never changed.
func NewProxyService(config ProxyConfig, reader ObjectReader) *ProxyService {
	return &ProxyService{
		config: config,
		reader: reader,
	}
}

// Config returns the service configuration.
func (s *ProxyService) Config() ProxyConfig {
	return s.config
}

// Fetch resolves requestPath to a key and performs one conditional read.
// The reader's outcome is folded into a single Result variant; a Found result
// carries an open body that the caller must close.
func (s *ProxyService) Fetch(ctx context.Context, requestPath, ifNoneMatch string) Result {
	key := ResolveKey(requestPath, s.config.KeyPrefix)

	obj, err := s.reader.Read(ctx, ConditionalRequest{
		Bucket:      s.config.Bucket,
		Key:         key,
		IfNoneMatch: ifNoneMatch,
	})

	switch {
	case err == nil:
		return Result{Kind: KindFound, Key: key, Object: obj}
	case errors.Is(err, ErrNotModified):
		return Result{Kind: KindNotModified, Key: key}
	case errors.Is(err, ErrNotFound):
		return Result{Kind: KindNotFound, Key: key}
	case errors.Is(err, ErrTransport):
		return Result{Kind: KindUpstreamError, Key: key, Err: err}
	default:
		return Result{Kind: KindUpstreamError, Key: key, Err: fmt.Errorf("%w: %w", ErrTransport, err)}
	}
}
