package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sagarc03/stowfront"
)

// HeaderField is one response header produced from object metadata.
type HeaderField struct {
	Name  string
	Value string
}

var (
	minHTTPDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	maxHTTPDate = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

	errDateOutOfRange = errors.New("date outside HTTP-date range")
)

// TranslateHeaders maps object metadata to response headers, in a fixed order.
// Absent attributes produce no header. Dates that cannot be written as an
// HTTP-date are dropped with a warning.
func TranslateHeaders(md stowfront.ObjectMetadata) []HeaderField {
	fields := make([]HeaderField, 0, 10)

	add := func(name, value string) {
		if value != "" {
			fields = append(fields, HeaderField{Name: name, Value: value})
		}
	}
	addDate := func(name string, t *time.Time) {
		if t == nil {
			return
		}
		v, err := formatHTTPDate(*t)
		if err != nil {
			slog.Warn("omitting invalid date header", "header", name, "value", t.String(), "err", err)
			return
		}
		add(name, v)
	}

	if md.ETag != "" {
		add("ETag", `"`+strings.Trim(md.ETag, `"`)+`"`)
	}
	addDate("Expires", md.Expires)
	addDate("Last-Modified", md.LastModified)
	add("Accept-Ranges", md.AcceptRanges)
	add("Content-Language", md.ContentLanguage)
	add("Content-Disposition", md.ContentDisposition)
	add("Cache-Control", md.CacheControl)
	add("Content-Encoding", md.ContentEncoding)
	if md.ContentLength != nil {
		add("Content-Length", strconv.FormatInt(*md.ContentLength, 10))
	}
	add("Content-Type", md.ContentType)

	return fields
}

// formatHTTPDate formats t as an IMF-fixdate, dropping fractional seconds.
func formatHTTPDate(t time.Time) (string, error) {
	t = t.UTC().Truncate(time.Second)
	if t.Before(minHTTPDate) || t.After(maxHTTPDate) {
		return "", errDateOutOfRange
	}
	return t.Format(http.TimeFormat), nil
}
