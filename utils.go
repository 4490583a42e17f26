package stowfront

import (
	"path"
	"strings"
)

const indexDocument = "index.html"

// ResolveKey maps a request path to a storage key.
// It applies, in order:
//   - a leading "/" is added when missing
//   - "index.html" is appended when the path ends with "/"
//   - the prefix, when non-empty, is prepended verbatim
//
// The prefix is expected to carry no leading or trailing slash (see NewProxyConfig).
// No decoding or dot-segment handling happens here; see CleanPath.
func ResolveKey(requestPath, prefix string) string {
	if !strings.HasPrefix(requestPath, "/") {
		requestPath = "/" + requestPath
	}

	if strings.HasSuffix(requestPath, "/") {
		requestPath += indexDocument
	}

	if prefix != "" {
		return prefix + requestPath
	}

	return requestPath
}

// CleanPath removes "." and ".." segments and duplicate slashes from an already
// decoded request path. The result is rooted at "/" and keeps a trailing slash
// when the input had one, so directory requests still resolve to their index.
func CleanPath(p string) string {
	if p == "" {
		return "/"
	}

	cleaned := path.Clean("/" + p)
	if cleaned != "/" && strings.HasSuffix(p, "/") {
		cleaned += "/"
	}

	return cleaned
}
