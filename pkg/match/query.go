package match

import (
	"fmt"
	"net/http"

	"github.com/getmockd/mockhttp/internal/wildcard"
)

type queryMatcher struct {
	key      string
	pattern  string
	compiled wildcard.Pattern
}

// Query matches requests whose query string carries the key with at least
// one value matching the wildcard pattern. An absent key never matches.
func Query(key, pattern string) Matcher {
	return queryMatcher{key: key, pattern: pattern, compiled: wildcard.Compile(pattern)}
}

func (m queryMatcher) Matches(r *http.Request, _ []byte) bool {
	values, ok := r.URL.Query()[m.key]
	if !ok {
		return false
	}
	for _, v := range values {
		if m.compiled.Match(v) {
			return true
		}
	}
	return false
}

func (m queryMatcher) String() string {
	return fmt.Sprintf("query %q = %q", m.key, m.pattern)
}
