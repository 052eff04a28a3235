package match

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getmockd/mockhttp/internal/wildcard"
)

type urlMatcher struct {
	pattern  string
	compiled wildcard.Pattern
}

// URL matches the full request URL string (scheme, host, path, and query)
// against a wildcard pattern, e.g. "https://api.test/users/*".
func URL(pattern string) Matcher {
	return urlMatcher{pattern: pattern, compiled: wildcard.Compile(pattern)}
}

func (m urlMatcher) Matches(r *http.Request, _ []byte) bool {
	return m.compiled.Match(r.URL.String())
}

func (m urlMatcher) String() string {
	return fmt.Sprintf("url %q", m.pattern)
}

type hostMatcher struct {
	pattern  string
	compiled wildcard.Pattern
}

// Host matches the request host against a wildcard pattern, e.g.
// "*.example.com".
func Host(pattern string) Matcher {
	return hostMatcher{pattern: pattern, compiled: wildcard.Compile(pattern)}
}

func (m hostMatcher) Matches(r *http.Request, _ []byte) bool {
	return m.compiled.Match(requestHost(r))
}

// requestHost resolves the effective host of a request. The URL host is
// consulted first; the Host field is the fallback for requests built
// without an absolute URL.
func requestHost(r *http.Request) string {
	if r.URL.Host != "" {
		return r.URL.Host
	}
	return r.Host
}

func (m hostMatcher) String() string {
	return fmt.Sprintf("host %q", m.pattern)
}

type schemeMatcher string

// Scheme matches the URL scheme ("http", "https"), case-insensitively.
func Scheme(scheme string) Matcher {
	return schemeMatcher(scheme)
}

func (m schemeMatcher) Matches(r *http.Request, _ []byte) bool {
	return strings.EqualFold(r.URL.Scheme, string(m))
}

func (m schemeMatcher) String() string {
	return fmt.Sprintf("scheme %q", strings.ToLower(string(m)))
}
