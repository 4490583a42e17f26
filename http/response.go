package http

import (
	"io"
	"net/http"
)

// HealthBody is the fixed liveness response.
const HealthBody = "stowfront OK"

// writeObjectHeaders copies translated metadata headers onto w. Content-Type
// is suppressed rather than sniffed when the object has none.
func writeObjectHeaders(w http.ResponseWriter, fields []HeaderField) {
	h := w.Header()
	for _, f := range fields {
		h.Set(f.Name, f.Value)
	}
	if _, ok := h["Content-Type"]; !ok {
		h["Content-Type"] = nil
	}
}

func writeNotModified(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotModified)
}

func writeHealth(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, HealthBody)
}
