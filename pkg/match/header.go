package match

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/getmockd/mockhttp/internal/wildcard"
)

type headerMatcher struct {
	name     string
	pattern  string
	compiled wildcard.Pattern
}

// Header matches requests carrying the named header (case-insensitive, per
// HTTP) with at least one value matching the wildcard pattern. An absent
// header never matches, not even against "*".
func Header(name, pattern string) Matcher {
	return headerMatcher{
		name:     http.CanonicalHeaderKey(name),
		pattern:  pattern,
		compiled: wildcard.Compile(pattern),
	}
}

func (m headerMatcher) Matches(r *http.Request, _ []byte) bool {
	for _, v := range r.Header.Values(m.name) {
		if m.compiled.Match(v) {
			return true
		}
	}
	return false
}

func (m headerMatcher) String() string {
	return fmt.Sprintf("header %q = %q", m.name, m.pattern)
}

type contentTypeMatcher string

// ContentType matches the request's media type, ignoring parameters such as
// charset: ContentType("application/json") matches a Content-Type of
// "application/json; charset=utf-8".
func ContentType(mediaType string) Matcher {
	return contentTypeMatcher(mediaType)
}

func (m contentTypeMatcher) Matches(r *http.Request, _ []byte) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return strings.EqualFold(mt, string(m))
}

func (m contentTypeMatcher) String() string {
	return fmt.Sprintf("content type %q", string(m))
}
