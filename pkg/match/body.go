package match

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/getmockd/mockhttp/pkg/util"
)

// descBodySize caps how much body text a matcher description reproduces.
const descBodySize = 64

type bodyEqualsMatcher string

// BodyEquals matches requests whose body is exactly s.
func BodyEquals(s string) Matcher {
	return bodyEqualsMatcher(s)
}

func (m bodyEqualsMatcher) Matches(_ *http.Request, body []byte) bool {
	return string(body) == string(m)
}

func (m bodyEqualsMatcher) String() string {
	return fmt.Sprintf("body = %q", util.TruncateBody(string(m), descBodySize))
}

type bodyContainsMatcher string

// BodyContains matches requests whose body contains s.
func BodyContains(s string) Matcher {
	return bodyContainsMatcher(s)
}

func (m bodyContainsMatcher) Matches(_ *http.Request, body []byte) bool {
	return strings.Contains(string(body), string(m))
}

func (m bodyContainsMatcher) String() string {
	return fmt.Sprintf("body containing %q", util.TruncateBody(string(m), descBodySize))
}

type bodyRegexpMatcher struct {
	expr string
	re   *regexp.Regexp
}

// NewBodyRegexp matches request bodies against an RE2 expression.
func NewBodyRegexp(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid body pattern %q: %w", expr, err)
	}
	return bodyRegexpMatcher{expr: expr, re: re}, nil
}

func (m bodyRegexpMatcher) Matches(_ *http.Request, body []byte) bool {
	return m.re.Match(body)
}

func (m bodyRegexpMatcher) String() string {
	return fmt.Sprintf("body matching %q", m.expr)
}
