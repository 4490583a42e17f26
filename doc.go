// Package stowfront serves the contents of a single object-storage bucket as a
// static web site.
//
// A GET on a path is translated into a conditional read of one object, and the
// object's bytes and metadata are streamed back to the client. This package holds
// the translation core: key resolution, the conditional read contract consumed
// from storage backends, and the lazy chunk source used to stream bodies.
//
// # Key Components
//
//   - ResolveKey: maps a request path to a storage key (index.html for directories)
//   - ProxyConfig: immutable bucket and key prefix settings
//   - ObjectReader: interface implemented by storage backends (s3store, filesystem)
//   - ProxyService: issues one conditional read per request and folds the outcome
//     into a flat Result
//   - Chunks: lazy sequence of body chunks backed by a bounded buffer
//
// # Example Usage
//
//	cfg := stowfront.NewProxyConfig("my-site", "/public/")
//	service := stowfront.NewProxyService(cfg, reader)
//
//	res := service.Fetch(ctx, "/docs/", `"abc"`)
//	switch res.Kind {
//	case stowfront.KindFound:
//	    defer res.Object.Body.Close()
//	    // write headers and stream res.Object.Body
//	case stowfront.KindNotModified:
//	    // 304
//	}
//
// See the http package for the HTTP layer and the s3store and filesystem packages
// for storage backends.
package stowfront
