// Package http provides the HTTP layer of stowfront.
//
// The handler answers GET on any path by reading one object from the bucket and
// streaming it back. Object metadata is translated into response headers and the
// body is relayed chunk by chunk without buffering the whole object.
//
// # Features
//
//   - Directory requests resolve to index.html
//   - If-None-Match is forwarded to the object store; a match yields 304
//   - ETag, Expires, Last-Modified, Accept-Ranges, Content-Language,
//     Content-Disposition, Cache-Control, Content-Encoding, Content-Length and
//     Content-Type are passed through from object metadata
//   - Missing objects and backend failures both answer 404 with an HTML page;
//     only backend failures are logged at error level
//   - GET /_health liveness endpoint
//   - Optional Prometheus metrics route and configurable CORS support
//
// # Usage
//
//	service := stowfront.NewProxyService(stowfront.NewProxyConfig(bucket, prefix), store)
//
//	handlerCfg := http.HandlerConfig{
//	    Metrics:     metrics.New(),
//	    MetricsPath: "/_metrics",
//	}
//	handler := http.NewHandler(&handlerCfg, service)
//	http.ListenAndServe(":8080", handler.Router())
//
// # Streaming
//
// Headers are flushed before the body. If the object store fails midway the
// handler aborts the connection so the client observes a truncated response;
// if the client goes away the body is closed, which cancels the backend read.
package http
