package match

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/getmockd/mockhttp/internal/wildcard"
)

type pathMatcher struct {
	pattern  string
	compiled wildcard.Pattern
}

// Path matches the request path against a pattern. Supported forms, tried in
// order:
//   - exact: "/api/users" matches only "/api/users"
//   - named params: "/api/users/{id}" matches "/api/users/123"
//   - trailing wildcard: "/api/users/*" matches "/api/users" and any subpath
//   - general wildcards: "*" matches any run of characters
func Path(pattern string) Matcher {
	return pathMatcher{pattern: pattern, compiled: wildcard.Compile(pattern)}
}

func (m pathMatcher) Matches(r *http.Request, _ []byte) bool {
	path := r.URL.Path

	if m.pattern == path {
		return true
	}

	if strings.Contains(m.pattern, "{") && strings.Contains(m.pattern, "}") {
		if matchNamedParams(m.pattern, path) {
			return true
		}
	}

	// Trailing wildcard also matches the bare prefix itself.
	if strings.HasSuffix(m.pattern, "/*") {
		prefix := strings.TrimSuffix(m.pattern, "/*")
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}

	return !m.compiled.IsLiteral() && m.compiled.Match(path)
}

func (m pathMatcher) String() string {
	return fmt.Sprintf("path %q", m.pattern)
}

// matchNamedParams checks if path matches a pattern with {name} segments.
// A named segment matches any single path segment.
func matchNamedParams(pattern, path string) bool {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i, part := range patternParts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			continue
		}
		if part != pathParts[i] {
			return false
		}
	}
	return true
}

type pathRegexpMatcher struct {
	expr string
	re   *regexp.Regexp
}

// NewPathRegexp matches the request path against an RE2 expression. Unlike
// Path, the expression is not anchored; anchor explicitly with ^ and $ when
// a full match is intended.
func NewPathRegexp(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid path pattern %q: %w", expr, err)
	}
	return pathRegexpMatcher{expr: expr, re: re}, nil
}

func (m pathRegexpMatcher) Matches(r *http.Request, _ []byte) bool {
	return m.re.MatchString(r.URL.Path)
}

func (m pathRegexpMatcher) String() string {
	return fmt.Sprintf("path matching %q", m.expr)
}
